package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-board-backend/internal/board"
	"booking-board-backend/internal/booking"
	"booking-board-backend/internal/schedule"
	"booking-board-backend/internal/status"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	board    *board.Service
	store    status.Store
	schedule *schedule.Client
	halls    []string
}

// NewHandler creates a new API handler.
func NewHandler(b *board.Service, store status.Store, sched *schedule.Client, halls []string) *Handler {
	return &Handler{
		board:    b,
		store:    store,
		schedule: sched,
		halls:    halls,
	}
}

// statusCodeFor maps the store's failure taxonomy to HTTP statuses.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound):
		return http.StatusNotFound
	default:
		// ErrUpstream, ErrConfig, and anything unexpected.
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusCodeFor(err), gin.H{"ok": false, "error": err.Error()})
}
