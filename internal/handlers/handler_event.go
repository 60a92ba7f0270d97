package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler serves the polling surface over the append-only event log.
type eventHandler struct {
	eventService portssvc.EventSvcFacade
}

// newEventHandler creates a new eventHandler.
func newEventHandler(es portssvc.EventSvcFacade) *eventHandler {
	return &eventHandler{
		eventService: es,
	}
}

// registerEventRoutes registers the public event polling route.
func registerEventRoutes(rg *gin.RouterGroup, eventService portssvc.EventSvcFacade) {
	h := newEventHandler(eventService)
	rg.GET("/events", h.listEvents)
}

// listEvents godoc
// @Summary Poll the ledger event log
// @Description Returns events with sequence greater than the cursor, in commit order, plus the newest committed sequence
// @Tags events
// @Produce  json
// @Param   after query int false "Sequence cursor; only events after it are returned" default(0)
// @Param   limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} map[string]string "Invalid cursor parameters"
// @Failure 500 {object} map[string]string "Failed to list events"
// @Router /events [get]
func (h *eventHandler) listEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor parameters: " + err.Error()})
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), params.After, params.Limit)
	if err != nil {
		logger.Error("Failed to list events from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	latest, err := h.eventService.LatestSequence(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read latest sequence from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	resp := dto.ListEventsResponse{
		Events:         make([]dto.EventResponse, 0, len(events)),
		LatestSequence: latest,
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, dto.ToEventResponse(ev))
	}

	c.JSON(http.StatusOK, resp)
}
