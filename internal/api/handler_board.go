package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"booking-board-backend/internal/board"
)

// GetSchedule handles GET /api/schedule. The fetch never fails hard: a
// degraded upstream yields an empty list and still a 200.
func (h *Handler) GetSchedule(c *gin.Context) {
	bookings := h.schedule.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "bookings": bookings})
}

// GetBoard handles GET /api/board?width=N: the fully laid-out grid.
func (h *Handler) GetBoard(c *gin.Context) {
	width := board.DefaultViewportWidth
	if raw := c.Query("width"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid width"})
			return
		}
		width = parsed
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "board": h.board.View(time.Now(), width)})
}

// GetHalls handles GET /api/halls.
func (h *Handler) GetHalls(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "halls": h.halls})
}
