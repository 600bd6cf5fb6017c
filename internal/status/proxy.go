package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"booking-board-backend/internal/booking"
	"booking-board-backend/internal/schedule"
)

// proxyStore holds no state of its own. Reads re-fetch the booking list
// and derive the overlay from each row's status cell; writes resolve the
// target row from a fresh fetch and issue one setStatus call. The two
// calls are not atomic: concurrent writers race and last-write-wins.
type proxyStore struct {
	baseURL  string
	schedule *schedule.Client
	client   *http.Client
}

// NewProxyStore creates a store that delegates to the upstream sheet API
// at baseURL. An empty baseURL degrades every operation to
// booking.ErrConfig instead of crashing.
func NewProxyStore(baseURL string, timeout time.Duration) Store {
	return &proxyStore{
		baseURL:  baseURL,
		schedule: schedule.NewClient(baseURL, timeout),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// setStatusResponse models the sheet API's write acknowledgement.
type setStatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *proxyStore) GetAll(ctx context.Context) (map[string]string, error) {
	bookings, err := s.schedule.FetchStrict(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]string, len(bookings))
	for _, b := range bookings {
		if !booking.Visible(b.Status) {
			continue
		}
		// A (time, hall) collision silently overwrites here; the sheet
		// owns uniqueness.
		statuses[b.Key()] = booking.StorageToUI(b.Status)
	}
	return statuses, nil
}

func (s *proxyStore) Set(ctx context.Context, key, uiStatus string) error {
	if s.baseURL == "" {
		return booking.ErrConfig
	}
	if key == "" {
		return fmt.Errorf("%w: missing booking key", booking.ErrValidation)
	}

	storage := booking.UIToStorage(uiStatus)
	if storage == "" {
		return fmt.Errorf("%w: unrecognized status %q", booking.ErrValidation, uiStatus)
	}

	// Resolve the upstream locator (row + opaque id) from a fresh list;
	// the key alone never reaches the sheet.
	bookings, err := s.schedule.FetchStrict(ctx)
	if err != nil {
		return err
	}

	var target *booking.Booking
	for i := range bookings {
		if bookings[i].Key() == key {
			target = &bookings[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: no booking for key %q", booking.ErrNotFound, key)
	}

	return s.writeStatus(ctx, target, storage)
}

func (s *proxyStore) Clear(ctx context.Context, key string) error {
	return s.Set(ctx, key, "")
}

func (s *proxyStore) writeStatus(ctx context.Context, target *booking.Booking, storage string) error {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return fmt.Errorf("%w: invalid base URL: %v", booking.ErrConfig, err)
	}

	q := u.Query()
	q.Set("action", "setStatus")
	q.Set("row", strconv.Itoa(target.Row))
	q.Set("id", target.ID)
	q.Set("status", storage)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create setStatus request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: setStatus call failed: %v", booking.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: setStatus returned status code %d", booking.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read setStatus response: %v", booking.ErrUpstream, err)
	}

	var ack setStatusResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("%w: unparseable setStatus response: %v", booking.ErrUpstream, err)
	}
	if !ack.Success {
		return fmt.Errorf("%w: sheet rejected the write: %s", booking.ErrUpstream, ack.Error)
	}
	return nil
}
