package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-board-backend/internal/booking"
)

// statusRequest is the POST/DELETE /api/status body.
type statusRequest struct {
	BookingKey string `json:"booking_key"`
	Status     string `json:"status"`
}

// GetStatuses handles GET /api/status: the full overlay in UI vocabulary.
func (h *Handler) GetStatuses(c *gin.Context) {
	statuses, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "statuses": statuses})
}

// SetStatus handles POST /api/status.
func (h *Handler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", booking.ErrValidation, err))
		return
	}
	if req.BookingKey == "" {
		fail(c, fmt.Errorf("%w: missing booking_key", booking.ErrValidation))
		return
	}
	if req.Status == "" {
		// Clearing goes through DELETE; an empty POST status is a
		// missing field, not a clear.
		fail(c, fmt.Errorf("%w: missing status", booking.ErrValidation))
		return
	}

	if err := h.board.SetStatus(c.Request.Context(), req.BookingKey, req.Status); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteStatus handles DELETE /api/status.
func (h *Handler) DeleteStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", booking.ErrValidation, err))
		return
	}
	if req.BookingKey == "" {
		fail(c, fmt.Errorf("%w: missing booking_key", booking.ErrValidation))
		return
	}

	if err := h.board.ClearStatus(c.Request.Context(), req.BookingKey); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
