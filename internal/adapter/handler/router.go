package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	httpmw "github.com/meeting-notes-team/meeting-notes/internal/infrastructure/http/middleware"
	"github.com/meeting-notes-team/meeting-notes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	notesHandler   *NotesHandler
	webhookHandler *WebhookHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, notesHandler *NotesHandler, webhookHandler *WebhookHandler) *Router {
	return &Router{
		cfg:            cfg,
		notesHandler:   notesHandler,
		webhookHandler: webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupMeetingRoutes configures the notes pipeline routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("/:id/process", rt.notesHandler.ProcessMeeting)
	meetings.GET("/:id/status", rt.notesHandler.GetStatus)
	meetings.GET("/:id/notes", rt.notesHandler.GetNotes)
	meetings.GET("/:id/transcript", rt.notesHandler.GetTranscript)
}

// setupWebhookRoutes configures provider webhook routes
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhooks := g.Group("/webhooks")
	webhooks.Use(httpmw.WebhookAuth("X-Webhook-Token", rt.cfg.Assembly.WebhookAuthToken))

	webhooks.POST("/transcription", rt.webhookHandler.HandleTranscriptionWebhook)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
