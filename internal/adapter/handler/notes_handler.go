package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-notes-team/meeting-notes/errors"
	"github.com/meeting-notes-team/meeting-notes/internal/adapter/dto"
	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
	"github.com/meeting-notes-team/meeting-notes/internal/infrastructure/storage"
	notesuc "github.com/meeting-notes-team/meeting-notes/internal/usecase/notes"
)

// NotesHandler exposes the notes pipeline over HTTP
type NotesHandler struct {
	svc         notesuc.Service
	objectStore *storage.MinIOClient
	logger      *zap.Logger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(svc notesuc.Service, objectStore *storage.MinIOClient, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{svc: svc, objectStore: objectStore, logger: logger}
}

// ProcessMeeting starts notes processing for a meeting recording
func (h *NotesHandler) ProcessMeeting(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	var req dto.ProcessMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	job, err := h.svc.StartProcessing(c.Request().Context(), meetingID, req.RecordingURL, entities.FormatStyle(req.Style))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleAccepted(h.logger, c, dto.ProcessMeetingResponse{
		JobID:     job.ID.String(),
		MeetingID: meetingID.String(),
		Status:    string(job.Status),
	})
}

// GetStatus reports the current pipeline status for a meeting
func (h *NotesHandler) GetStatus(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	status, err := h.svc.GetStatus(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if status == "" {
		return HandleError(h.logger, c, errors.ErrNotFound("notes job"))
	}

	return HandleSuccess(h.logger, c, dto.StatusResponse{
		MeetingID: meetingID.String(),
		Status:    string(status),
	})
}

// GetNotes returns the generated notes for a meeting
func (h *NotesHandler) GetNotes(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	notes, err := h.svc.GetNotes(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if notes == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("meeting notes"))
	}

	documentURL := ""
	if h.objectStore != nil && notes.ObjectKey != "" {
		if url, err := h.objectStore.GetFileURL(c.Request().Context(), notes.ObjectKey, time.Hour); err == nil {
			documentURL = url
		} else if h.logger != nil {
			h.logger.Warn("failed to presign notes document", zap.Error(err))
		}
	}

	return HandleSuccess(h.logger, c, dto.FromNotes(notes, documentURL))
}

// GetTranscript returns the stored transcript for a meeting
func (h *NotesHandler) GetTranscript(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	transcript, err := h.svc.GetTranscript(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if transcript == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("transcript"))
	}

	return HandleSuccess(h.logger, c, dto.FromTranscript(transcript))
}
