package schedule

import (
	"context"
	"log"
	"time"

	"booking-board-backend/internal/booking"
)

// Poller periodically re-fetches the schedule and hands the normalized
// list to a subscriber.
type Poller struct {
	client   *Client
	interval time.Duration
	publish  func([]booking.Booking)
}

// NewPoller creates a poller that invokes publish with every fetched list.
func NewPoller(client *Client, interval time.Duration, publish func([]booking.Booking)) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		publish:  publish,
	}
}

// Run fetches immediately, then on every interval tick until the context
// is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.publish(p.client.Fetch(ctx))

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("schedule poller shutting down")
			return
		case <-timer.C:
			p.publish(p.client.Fetch(ctx))
			timer.Reset(p.interval)
		}
	}
}
