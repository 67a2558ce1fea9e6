package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"speaker-event-finder/internal/models"
	"speaker-event-finder/internal/services"
)

// EventFinder is the workflow surface the handler depends on
type EventFinder interface {
	FindUpcomingEvents(ctx context.Context, name string, filter models.EventType) ([]models.Event, error)
}

// ErrorResponse is the body of a failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handler exposes the event workflow over HTTP
type Handler struct {
	finder EventFinder
	router *gin.Engine
	log    *zap.Logger
}

// NewHandler creates the HTTP handler and registers its routes
func NewHandler(finder EventFinder, log *zap.Logger) *Handler {
	h := &Handler{
		finder: finder,
		router: gin.New(),
		log:    log,
	}
	h.router.Use(gin.Recovery())
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/events", h.getEvents)
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getEvents handles GET /events?name=<speaker>&event_type=<in_person|online>.
// A missing name is a client error and never reaches the workflow; an
// upstream search failure is the only server error.
func (h *Handler) getEvents(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "query parameter 'name' is required",
		})
		return
	}

	var filter models.EventType
	if rawType := c.Query("event_type"); rawType != "" {
		filter = models.EventType(rawType)
		if filter != models.EventTypeInPerson && filter != models.EventTypeOnline {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "event_type must be one of: in_person, online",
			})
			return
		}
	}

	events, err := h.finder.FindUpcomingEvents(c.Request.Context(), name, filter)
	if err != nil {
		var searchErr *services.SearchProviderError
		if errors.As(err, &searchErr) {
			h.log.Error("Search provider failure",
				zap.String("speaker", name),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "search_provider_error",
				Message: "upstream search failed",
			})
			return
		}

		h.log.Error("Workflow failure", zap.String("speaker", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to find events",
		})
		return
	}

	c.JSON(http.StatusOK, models.EventsResponse{
		Speaker: name,
		Count:   len(events),
		Events:  events,
	})
}
