// Package schedule retrieves the day's booking list from the upstream
// spreadsheet API and normalizes its loose response shapes.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"booking-board-backend/internal/booking"
)

// Client fetches the raw booking list. The read path prioritizes
// availability over correctness: every failure mode normalizes to an
// empty list so the board keeps rendering when the source is degraded.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a schedule client. An empty baseURL is allowed and
// simply makes every fetch return an empty list.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch issues one read call to the upstream source and returns the
// normalized booking list. It never reports an error to the caller.
func (c *Client) Fetch(ctx context.Context) []booking.Booking {
	list, err := c.FetchStrict(ctx)
	if err != nil {
		log.Printf("schedule: %v", err)
		return []booking.Booking{}
	}
	return list
}

// FetchStrict is Fetch without the error swallowing, for callers (the
// proxy status store) that must tell a degraded source apart from an
// empty day. An unset base URL is reported as a config error.
func (c *Client) FetchStrict(ctx context.Context) ([]booking.Booking, error) {
	if c.baseURL == "" {
		return nil, booking.ErrConfig
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch failed: %v", booking.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received non-200 status code: %d", booking.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", booking.ErrUpstream, err)
	}

	return Normalize(body), nil
}

// Normalize resolves the upstream payload's tagged union at the system
// boundary: either an object with a "bookings" field or a bare array.
// Anything else yields an empty list. Internal code only ever sees the
// flat list form.
func Normalize(payload []byte) []booking.Booking {
	var wrapper struct {
		Bookings []booking.Booking `json:"bookings"`
	}
	if err := json.Unmarshal(payload, &wrapper); err == nil && wrapper.Bookings != nil {
		return clean(wrapper.Bookings)
	}

	var list []booking.Booking
	if err := json.Unmarshal(payload, &list); err == nil && list != nil {
		return clean(list)
	}

	log.Printf("schedule: unrecognized payload shape; treating as empty")
	return []booking.Booking{}
}

// clean applies the per-row feed fixups: the sheet suffixes hall names
// with " зал" and leaves the status cell blank for plain reservations.
func clean(bookings []booking.Booking) []booking.Booking {
	out := make([]booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		b.Hall = strings.TrimSpace(strings.ReplaceAll(b.Hall, " зал", ""))
		if b.Status == "" {
			b.Status = booking.StatusBooked
		}
		out = append(out, b)
	}
	return out
}
