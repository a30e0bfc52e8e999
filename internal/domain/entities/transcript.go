package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TokenKind distinguishes spoken words from punctuation in a token stream.
type TokenKind string

const (
	TokenPronunciation TokenKind = "pronunciation"
	TokenPunctuation   TokenKind = "punctuation"
)

// TranscriptToken is a single word or punctuation mark emitted by the
// transcription service. StartMS is only meaningful for pronunciation tokens.
type TranscriptToken struct {
	Kind    TokenKind `json:"kind"`
	Content string    `json:"content"`
	StartMS int64     `json:"start_ms,omitempty"`
}

// SpeakerSegment maps a speaker label to the start times of the tokens that
// belong to it. Segments are the source of truth for speaker attribution.
type SpeakerSegment struct {
	Speaker     string  `json:"speaker"`
	TokenStarts []int64 `json:"token_starts"`
}

// SpeakerTurn is a contiguous run of words spoken by one speaker.
type SpeakerTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// TranscriptWord represents a single word with time and speaker info,
// as delivered by the transcription provider.
type TranscriptWord struct {
	Word       string  `json:"word"`
	StartMS    int64   `json:"start_ms"`
	EndMS      int64   `json:"end_ms"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker,omitempty"`
}

// Transcript is the stored transcript model
type Transcript struct {
	ID              uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       uuid.UUID                                  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Text            string                                     `json:"text" gorm:"type:text"`
	SpeakerText     string                                     `json:"speaker_text,omitempty" gorm:"type:text"`
	Language        string                                     `json:"language,omitempty" gorm:"type:varchar(20)"`
	Words           []TranscriptWord                           `json:"words,omitempty" gorm:"type:jsonb;serializer:json"`
	Turns           []SpeakerTurn                              `json:"turns,omitempty" gorm:"type:jsonb;serializer:json"`
	ConfidenceScore float64                                    `json:"confidence_score,omitempty"`
	HasSpeakers     bool                                       `json:"has_speakers" gorm:"default:false"`
	SpeakerCount    int                                        `json:"speaker_count,omitempty"`
	DurationSeconds int                                        `json:"duration_seconds,omitempty"`
	ModelUsed       string                                     `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	RawData         datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript
func NewTranscript(meetingID uuid.UUID) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
