package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a notes processing job
type JobStatus string

const (
	JobStatusPending         JobStatus = "pending"          // Waiting to be submitted for transcription
	JobStatusSubmitted       JobStatus = "submitted"        // Submitted to AssemblyAI, waiting for transcript
	JobStatusTranscriptReady JobStatus = "transcript_ready" // Transcript stored, waiting for notes generation
	JobStatusSummarizing     JobStatus = "summarizing"      // Claimed by a worker, notes being generated
	JobStatusCompleted       JobStatus = "completed"        // All processing done
	JobStatusFailed          JobStatus = "failed"           // Processing failed
)

// NotesJob tracks the pipeline from recording URL to rendered notes
type NotesJob struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Status        JobStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	ExternalJobID *string   `json:"external_job_id,omitempty" gorm:"type:varchar(255);index"` // AssemblyAI transcript ID
	RecordingURL  string    `json:"recording_url" gorm:"type:text;not null"`

	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	RetryCount  int        `json:"retry_count" gorm:"type:integer;default:0"`
	MaxRetries  int        `json:"max_retries" gorm:"type:integer;default:3"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	Metadata JobMetadata `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// JobMetadata stores additional metadata for notes jobs
type JobMetadata struct {
	Style            string `json:"style,omitempty"`
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	Language         string `json:"language,omitempty"`
	SpeakerCount     int    `json:"speaker_count,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
	UsedFallback     bool   `json:"used_fallback,omitempty"`
	WebhookAttempts  int    `json:"webhook_attempts,omitempty"`
}

// Scan implements sql.Scanner interface for GORM
func (m *JobMetadata) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &m)
}

// Value implements driver.Valuer interface for GORM
func (m JobMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NewNotesJob creates a new notes job
func NewNotesJob(meetingID uuid.UUID, recordingURL string) *NotesJob {
	return &NotesJob{
		ID:           uuid.New(),
		MeetingID:    meetingID,
		Status:       JobStatusPending,
		RecordingURL: recordingURL,
		RetryCount:   0,
		MaxRetries:   3,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// TableName specifies the table name for NotesJob
func (NotesJob) TableName() string {
	return "notes_jobs"
}

// IsRetryable checks if job can be retried
func (j *NotesJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries && j.Status == JobStatusFailed
}

// CanBeSubmitted checks if job is ready to be submitted
func (j *NotesJob) CanBeSubmitted() bool {
	return j.Status == JobStatusPending || (j.Status == JobStatusFailed && j.IsRetryable())
}

// MarkAsSubmitted marks job as submitted to the transcription service
func (j *NotesJob) MarkAsSubmitted(externalJobID string) {
	j.Status = JobStatusSubmitted
	j.ExternalJobID = &externalJobID
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted marks job as finished
func (j *NotesJob) MarkAsCompleted() {
	j.Status = JobStatusCompleted
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}
