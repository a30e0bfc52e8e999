package entities

import (
	"time"

	"github.com/google/uuid"
)

// Participant is someone identified in the meeting, either from speaker
// diarization or from the completion's participants list.
type Participant struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// DisplayName resolves the printable name: name first, then id, then "Unknown".
func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.ID != "" {
		return p.ID
	}
	return "Unknown"
}

// FormatStyle selects which notes layout to render
type FormatStyle string

const (
	// FormatStyleRich splits Decision/Technical/Cost/Risk points into
	// dedicated sections. This is the canonical layout.
	FormatStyleRich FormatStyle = "rich"
	// FormatStyleSimple is the legacy layout: one flat Key Takeaways list
	// and a numbered Action Items list.
	FormatStyleSimple FormatStyle = "simple"
)

// MeetingNotes is the stored rendered document together with the structured
// fields it was built from.
type MeetingNotes struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID    uuid.UUID     `json:"meeting_id" gorm:"type:uuid;not null;index"`
	TranscriptID *uuid.UUID    `json:"transcript_id,omitempty" gorm:"type:uuid;index"`
	Summary      string        `json:"summary" gorm:"type:text"`
	KeyPoints    []string      `json:"key_points,omitempty" gorm:"type:jsonb;serializer:json"`
	ActionItems  []string      `json:"action_items,omitempty" gorm:"type:jsonb;serializer:json"`
	Decisions    []string      `json:"decisions,omitempty" gorm:"type:jsonb;serializer:json"`
	Participants []Participant `json:"participants,omitempty" gorm:"type:jsonb;serializer:json"`
	Markdown     string        `json:"markdown" gorm:"type:text;not null"`
	Style        FormatStyle   `json:"style" gorm:"type:varchar(20);default:'rich'"`
	ObjectKey    string        `json:"object_key,omitempty" gorm:"type:varchar(512)"`
	HasSpeakers  bool          `json:"has_speakers" gorm:"default:false"`
	MeetingDate  time.Time     `json:"meeting_date"`
	GeneratedAt  time.Time     `json:"generated_at"`
	ModelUsed    string        `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MeetingNotes
func (MeetingNotes) TableName() string {
	return "meeting_notes"
}

// NewMeetingNotes creates a new MeetingNotes entity
func NewMeetingNotes(meetingID uuid.UUID) *MeetingNotes {
	return &MeetingNotes{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Style:     FormatStyleRich,
	}
}
