package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

// NotesRepository handles meeting notes data operations
type NotesRepository struct {
	db *gorm.DB
}

// NewNotesRepository creates a new notes repository
func NewNotesRepository(db *gorm.DB) *NotesRepository {
	return &NotesRepository{db: db}
}

// SaveNotes stores rendered meeting notes
func (r *NotesRepository) SaveNotes(ctx context.Context, notes *entities.MeetingNotes) error {
	if notes == nil {
		return errors.New("notes cannot be nil")
	}
	return r.db.WithContext(ctx).Create(notes).Error
}

// GetNotesByMeetingID retrieves the latest notes for a meeting
func (r *NotesRepository) GetNotesByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingNotes, error) {
	var notes entities.MeetingNotes
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&notes).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notes, nil
}

// GetNotesByID retrieves notes by ID
func (r *NotesRepository) GetNotesByID(ctx context.Context, id uuid.UUID) (*entities.MeetingNotes, error) {
	var notes entities.MeetingNotes
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notes).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notes, nil
}

// UpdateObjectKey records where the rendered document was uploaded
func (r *NotesRepository) UpdateObjectKey(ctx context.Context, id uuid.UUID, objectKey string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingNotes{}).
		Where("id = ?", id).
		Update("object_key", objectKey).Error
}
