// Package board composes the schedule, the status overlay, and the time
// grid into the renderable booking board, and owns the polling and
// optimistic-update protocol around them.
package board

import (
	"context"
	"log"
	"sync"
	"time"

	"booking-board-backend/config"
	"booking-board-backend/internal/booking"
	"booking-board-backend/internal/schedule"
	"booking-board-backend/internal/status"
)

// Service holds the board's live state: the latest fetched booking list
// and the status overlay cache.
type Service struct {
	cfg     *config.Config
	fetcher *schedule.Client
	overlay *Overlay

	mu       sync.RWMutex
	bookings []booking.Booking
}

// NewService creates the board service.
func NewService(cfg *config.Config, fetcher *schedule.Client, store status.Store) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		overlay:  NewOverlay(store),
		bookings: []booking.Booking{},
	}
}

// Run starts the two polling loops and blocks until the context is
// cancelled: the schedule on its slow interval, the status overlay on its
// fast one.
func (s *Service) Run(ctx context.Context) {
	log.Println("starting board service...")

	go schedule.NewPoller(s.fetcher, s.cfg.Poll.ScheduleInterval, s.publish).Run(ctx)

	if err := s.overlay.Refresh(ctx); err != nil {
		log.Printf("board: initial status refresh failed: %v", err)
	}

	timer := time.NewTimer(s.cfg.Poll.StatusInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("board service shutting down")
			return
		case <-timer.C:
			if err := s.overlay.Refresh(ctx); err != nil {
				// Read failures are only visible as a missing overlay;
				// the board keeps rendering.
				log.Printf("board: status refresh failed: %v", err)
			}
			timer.Reset(s.cfg.Poll.StatusInterval)
		}
	}
}

func (s *Service) publish(bookings []booking.Booking) {
	s.mu.Lock()
	s.bookings = bookings
	s.mu.Unlock()
}

// Bookings returns the latest fetched booking list.
func (s *Service) Bookings() []booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]booking.Booking(nil), s.bookings...)
}

// Statuses returns the current overlay snapshot in UI vocabulary.
func (s *Service) Statuses() map[string]string {
	return s.overlay.Snapshot()
}

// SetStatus applies a status optimistically and writes it through. After
// the write settles, a reconcile fetch runs so the cache converges on the
// store's truth.
func (s *Service) SetStatus(ctx context.Context, key, uiStatus string) error {
	err := s.overlay.SetStatus(ctx, key, uiStatus)
	s.reconcile(ctx)
	return err
}

// ClearStatus removes a booking's status.
func (s *Service) ClearStatus(ctx context.Context, key string) error {
	err := s.overlay.Clear(ctx, key)
	s.reconcile(ctx)
	return err
}

func (s *Service) reconcile(ctx context.Context) {
	if err := s.overlay.Refresh(ctx); err != nil {
		log.Printf("board: reconcile refresh failed: %v", err)
	}
}

// View lays out the board for a viewport width at the current time.
func (s *Service) View(now time.Time, viewportWidth int) View {
	return Layout(
		s.Bookings(),
		s.overlay.Snapshot(),
		s.overlay.InFlight,
		s.cfg.Halls,
		s.cfg.Grid.DayStart,
		s.cfg.Grid.DayEnd,
		s.cfg.Grid.RowPx,
		now,
		viewportWidth,
	)
}
