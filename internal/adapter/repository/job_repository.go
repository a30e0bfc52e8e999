package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

// JobRepository handles notes job data operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// GetDB exposes the underlying handle for atomic claim updates
func (r *JobRepository) GetDB() *gorm.DB {
	return r.db
}

// CreateJob creates a new notes job
func (r *JobRepository) CreateJob(ctx context.Context, job *entities.NotesJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// GetJobByID retrieves a job by ID
func (r *JobRepository) GetJobByID(ctx context.Context, jobID uuid.UUID) (*entities.NotesJob, error) {
	var job entities.NotesJob
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetJobByExternalID retrieves a job by its AssemblyAI transcript ID
func (r *JobRepository) GetJobByExternalID(ctx context.Context, externalID string) (*entities.NotesJob, error) {
	var job entities.NotesJob
	if err := r.db.WithContext(ctx).Where("external_job_id = ?", externalID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetLatestJobByMeetingID retrieves the most recent job for a meeting
func (r *JobRepository) GetLatestJobByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.NotesJob, error) {
	var job entities.NotesJob
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ListJobsByStatus retrieves jobs with a given status, oldest first
func (r *JobRepository) ListJobsByStatus(ctx context.Context, status entities.JobStatus, limit int) ([]entities.NotesJob, error) {
	var jobs []entities.NotesJob
	if limit == 0 {
		limit = 100
	}
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListStuckJobs retrieves jobs sitting in a status since before cutoff
func (r *JobRepository) ListStuckJobs(ctx context.Context, status entities.JobStatus, cutoff time.Time) ([]entities.NotesJob, error) {
	var jobs []entities.NotesJob
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", status, cutoff).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ClaimJob atomically transitions a job from one status to another. Returns
// false when another worker already claimed it.
func (r *JobRepository) ClaimJob(ctx context.Context, jobID uuid.UUID, from, to entities.JobStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ? AND status = ?", jobID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateJobStatus updates the status of a job
func (r *JobRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status entities.JobStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// TouchJob refreshes updated_at so timeout sweeps give the job more time
func (r *JobRepository) TouchJob(ctx context.Context, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ?", jobID).
		Update("updated_at", time.Now()).Error
}

// MarkJobAsSubmitted marks a job as submitted with its external transcript ID
func (r *JobRepository) MarkJobAsSubmitted(ctx context.Context, jobID uuid.UUID, externalID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":          entities.JobStatusSubmitted,
			"external_job_id": externalID,
			"started_at":      now,
			"updated_at":      now,
		}).Error
}

// MarkJobAsCompleted marks a job as completed
func (r *JobRepository) MarkJobAsCompleted(ctx context.Context, jobID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.JobStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// MarkJobAsFailed records the failure and bumps the retry count. Jobs under
// the retry limit go back to pending for resubmission.
func (r *JobRepository) MarkJobAsFailed(ctx context.Context, jobID uuid.UUID, lastError string) error {
	job, err := r.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return errors.New("job not found")
	}

	status := entities.JobStatusFailed
	if job.RetryCount+1 < job.MaxRetries {
		status = entities.JobStatusPending
	}

	return r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":      status,
			"retry_count": job.RetryCount + 1,
			"last_error":  lastError,
			"updated_at":  time.Now(),
		}).Error
}

// UpdateJobMetadata persists the metadata blob
func (r *JobRepository) UpdateJobMetadata(ctx context.Context, jobID uuid.UUID, metadata entities.JobMetadata) error {
	return r.db.WithContext(ctx).
		Model(&entities.NotesJob{}).
		Where("id = ?", jobID).
		Update("metadata", metadata).Error
}
