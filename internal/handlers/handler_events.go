package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler accepts operational events pushed by the booking, payment,
// vendor, expense and payroll modules.
type eventHandler struct {
	eventService portssvc.EventSvc
}

func newEventHandler(es portssvc.EventSvc) *eventHandler {
	return &eventHandler{eventService: es}
}

// registerEventRoutes registers the event ingestion route. The group must be
// authenticated with IntegrationTokenAuth.
func registerEventRoutes(rg *gin.RouterGroup, eventService portssvc.EventSvc) {
	h := newEventHandler(eventService)
	rg.POST("/events", h.ingestEvent)
}

// ingestEvent godoc
// @Summary Ingest an operational event
// @Description Posts the journal entries for an event. The tenant is taken from the integration token.
// @Description Replaying an event returns the entries it already produced.
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.EventEnvelope true "Event type and payload"
// @Success 201 {object} domain.EventResult "Event posted"
// @Success 200 {object} domain.EventResult "Event replayed"
// @Failure 400 {object} ErrorResponse "Unknown event type or invalid payload"
// @Failure 401 {object} ErrorResponse "Missing or invalid integration token"
// @Failure 503 {object} ErrorResponse "Ledger temporarily unavailable"
// @Security ApiKeyAuth
// @Router /integrations/events [post]
func (h *eventHandler) ingestEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, ok := middleware.GetIntegrationToken(c)
	if !ok {
		logger.Error("Integration token not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var env dto.EventEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		badRequest(c, "event envelope", err)
		return
	}

	logger = logger.With(slog.String("event_type", string(env.EventType)))
	logger.Info("Received operational event")

	result, err := h.eventService.Dispatch(c.Request.Context(), token.TenantID, env)
	if err != nil {
		respondError(c, err, "Failed to process event")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	logger.Info("Operational event processed",
		slog.String("source_record_id", result.SourceRecordID),
		slog.Int("entries", len(result.Entries)),
		slog.Bool("replayed", result.Replayed))
	c.JSON(status, result)
}
