package dto

import (
	"time"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

// ProcessMeetingRequest starts notes processing for a recording
type ProcessMeetingRequest struct {
	RecordingURL string `json:"recording_url" validate:"required,url"`
	Style        string `json:"style" validate:"omitempty,oneof=rich simple"`
}

// ProcessMeetingResponse acknowledges an accepted processing job
type ProcessMeetingResponse struct {
	JobID     string `json:"job_id"`
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
}

// StatusResponse reports the current pipeline status for a meeting
type StatusResponse struct {
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
}

// NotesResponse is the API shape of generated meeting notes
type NotesResponse struct {
	ID           string                 `json:"id"`
	MeetingID    string                 `json:"meeting_id"`
	Summary      string                 `json:"summary"`
	KeyPoints    []string               `json:"key_points,omitempty"`
	ActionItems  []string               `json:"action_items,omitempty"`
	Decisions    []string               `json:"decisions,omitempty"`
	Participants []entities.Participant `json:"participants,omitempty"`
	Markdown     string                 `json:"markdown"`
	Style        string                 `json:"style"`
	DocumentURL  string                 `json:"document_url,omitempty"`
	HasSpeakers  bool                   `json:"has_speakers"`
	MeetingDate  time.Time              `json:"meeting_date"`
	GeneratedAt  time.Time              `json:"generated_at"`
	ModelUsed    string                 `json:"model_used,omitempty"`
}

// TranscriptResponse is the API shape of a stored transcript
type TranscriptResponse struct {
	ID              string                 `json:"id"`
	MeetingID       string                 `json:"meeting_id"`
	Text            string                 `json:"text"`
	SpeakerText     string                 `json:"speaker_text,omitempty"`
	Turns           []entities.SpeakerTurn `json:"turns,omitempty"`
	Language        string                 `json:"language,omitempty"`
	ConfidenceScore float64                `json:"confidence_score,omitempty"`
	HasSpeakers     bool                   `json:"has_speakers"`
	SpeakerCount    int                    `json:"speaker_count,omitempty"`
	DurationSeconds int                    `json:"duration_seconds,omitempty"`
}

// FromNotes maps the entity to its API shape
func FromNotes(n *entities.MeetingNotes, documentURL string) NotesResponse {
	return NotesResponse{
		ID:           n.ID.String(),
		MeetingID:    n.MeetingID.String(),
		Summary:      n.Summary,
		KeyPoints:    n.KeyPoints,
		ActionItems:  n.ActionItems,
		Decisions:    n.Decisions,
		Participants: n.Participants,
		Markdown:     n.Markdown,
		Style:        string(n.Style),
		DocumentURL:  documentURL,
		HasSpeakers:  n.HasSpeakers,
		MeetingDate:  n.MeetingDate,
		GeneratedAt:  n.GeneratedAt,
		ModelUsed:    n.ModelUsed,
	}
}

// FromTranscript maps the entity to its API shape
func FromTranscript(t *entities.Transcript) TranscriptResponse {
	return TranscriptResponse{
		ID:              t.ID.String(),
		MeetingID:       t.MeetingID.String(),
		Text:            t.Text,
		SpeakerText:     t.SpeakerText,
		Turns:           t.Turns,
		Language:        t.Language,
		ConfidenceScore: t.ConfidenceScore,
		HasSpeakers:     t.HasSpeakers,
		SpeakerCount:    t.SpeakerCount,
		DurationSeconds: t.DurationSeconds,
	}
}
