package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"booking-board-backend/config"
	"booking-board-backend/internal/board"
	"booking-board-backend/internal/mw"
	"booking-board-backend/internal/schedule"
	"booking-board-backend/internal/status"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, b *board.Service, store status.Store, sched *schedule.Client) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(b, store, sched, cfg.Halls)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(mw.RequestID(), rateLimiter)
	{
		api.GET("/status", handler.GetStatuses)
		api.POST("/status", handler.SetStatus)
		api.DELETE("/status", handler.DeleteStatus)

		api.GET("/schedule", caching, handler.GetSchedule)
		api.GET("/board", handler.GetBoard)
		api.GET("/halls", caching, handler.GetHalls)
	}

	return r
}
