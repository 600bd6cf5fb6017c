// Package status owns the visit-status overlay: the mapping from booking
// key to status annotation, kept apart from the bookings themselves.
//
// Two implementations of the same contract exist and are selected by
// configuration, never mixed: the proxy store delegates every read and
// write to the upstream sheet API, the ephemeral store keeps the overlay
// in process memory only.
package status

import "context"

// Store is the status overlay contract. Keys are booking keys
// (time range + "_" + hall); statuses cross this boundary in the UI
// vocabulary on both sides.
type Store interface {
	// GetAll returns the full current overlay, filtered to real
	// annotations: the "none"/"booked" placeholders are never surfaced.
	GetAll(ctx context.Context) (map[string]string, error)

	// Set attaches a status to a booking. Fails with
	// booking.ErrValidation on an empty key or a status outside the
	// vocabulary, booking.ErrNotFound (proxy mode) when no booking
	// matches the key in a fresh fetch, booking.ErrUpstream when the
	// remote call fails, and booking.ErrConfig when the upstream base
	// URL is required but unset.
	Set(ctx context.Context, key, uiStatus string) error

	// Clear removes a booking's annotation; equivalent to Set with "".
	Clear(ctx context.Context, key string) error
}
