package handler

import (
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-notes-team/meeting-notes/errors"
	notesuc "github.com/meeting-notes-team/meeting-notes/internal/usecase/notes"
)

// WebhookHandler handles incoming webhooks from the transcription provider
type WebhookHandler struct {
	svc    notesuc.Service
	logger *zap.Logger
}

// NewWebhookHandler creates a new handler
func NewWebhookHandler(svc notesuc.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, logger: logger}
}

// HandleTranscriptionWebhook receives webhooks from AssemblyAI
func (h *WebhookHandler) HandleTranscriptionWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("unreadable webhook payload"))
	}

	// AssemblyAI signs requests in a header; try common header names
	signature := c.Request().Header.Get("x-assemblyai-signature")
	if signature == "" {
		signature = c.Request().Header.Get("Authorization")
	}

	if err := h.svc.HandleTranscriptionWebhook(c.Request().Context(), body, signature); err != nil {
		if h.logger != nil {
			h.logger.Error("transcription webhook handler error", zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrTranscriptionFailed(err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "ok"})
}
