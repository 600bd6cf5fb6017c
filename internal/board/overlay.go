package board

import (
	"context"
	"fmt"
	"sync"

	"booking-board-backend/internal/booking"
	"booking-board-backend/internal/status"
)

// Overlay is the board's local status cache with optimistic updates.
//
// A write mutates the cache immediately, marks its key in flight, and is
// rolled back to the pre-write snapshot if the store call fails. Keys are
// independent: operations on different keys never block one another.
//
// Each local write bumps the key's version counter when it starts. A
// refresh records the counters before fetching and applies a key's
// fetched value only if its counter is unchanged and the key is not in
// flight, so a slow read started before a newer write can never overwrite
// the fresher local value.
type Overlay struct {
	store status.Store

	mu       sync.Mutex
	statuses map[string]string // UI vocabulary
	inFlight map[string]bool
	versions map[string]uint64
}

// NewOverlay creates an empty overlay on top of the given store.
func NewOverlay(store status.Store) *Overlay {
	return &Overlay{
		store:    store,
		statuses: make(map[string]string),
		inFlight: make(map[string]bool),
		versions: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the current overlay.
func (o *Overlay) Snapshot() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := make(map[string]string, len(o.statuses))
	for k, v := range o.statuses {
		snap[k] = v
	}
	return snap
}

// InFlight reports whether the key has an outstanding write. The UI uses
// this to disable that booking's actions, and only that booking's.
func (o *Overlay) InFlight(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight[key]
}

// SetStatus optimistically applies the intended status for key, then
// performs the store write. On failure the cache entry is restored to its
// pre-call value and the store's error is returned. On settlement the
// caller is expected to Refresh to reconcile with ground truth.
func (o *Overlay) SetStatus(ctx context.Context, key, uiStatus string) error {
	if key == "" {
		return fmt.Errorf("%w: missing booking key", booking.ErrValidation)
	}
	storage := booking.UIToStorage(uiStatus)
	if storage == "" {
		return fmt.Errorf("%w: unrecognized status %q", booking.ErrValidation, uiStatus)
	}

	o.mu.Lock()
	prev, hadPrev := o.statuses[key]
	o.versions[key]++
	o.inFlight[key] = true
	if storage == booking.StatusNone {
		delete(o.statuses, key)
	} else {
		o.statuses[key] = booking.StorageToUI(storage)
	}
	o.mu.Unlock()

	// The store call happens outside the lock so writes to other keys
	// proceed concurrently.
	err := o.store.Set(ctx, key, uiStatus)

	o.mu.Lock()
	delete(o.inFlight, key)
	if err != nil {
		if hadPrev {
			o.statuses[key] = prev
		} else {
			delete(o.statuses, key)
		}
	}
	o.mu.Unlock()

	return err
}

// Clear removes the key's status, optimistically and in the store.
func (o *Overlay) Clear(ctx context.Context, key string) error {
	return o.SetStatus(ctx, key, "")
}

// Refresh reconciles the cache with the store. Keys written locally since
// this fetch started, or still in flight, keep their local value.
func (o *Overlay) Refresh(ctx context.Context) error {
	o.mu.Lock()
	startVersions := make(map[string]uint64, len(o.versions))
	for k, v := range o.versions {
		startVersions[k] = v
	}
	o.mu.Unlock()

	fetched, err := o.store.GetAll(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	next := make(map[string]string, len(fetched))
	for k, v := range fetched {
		next[k] = v
	}

	// Preserve local truth for keys that moved underneath this fetch.
	union := make(map[string]struct{}, len(next)+len(o.statuses))
	for k := range next {
		union[k] = struct{}{}
	}
	for k := range o.statuses {
		union[k] = struct{}{}
	}
	for k := range union {
		if !o.stale(k, startVersions) {
			continue
		}
		if local, ok := o.statuses[k]; ok {
			next[k] = local
		} else {
			delete(next, k)
		}
	}

	o.statuses = next
	return nil
}

// stale reports whether the fetch that started with startVersions may not
// be trusted for key. Caller holds o.mu.
func (o *Overlay) stale(key string, startVersions map[string]uint64) bool {
	return o.inFlight[key] || o.versions[key] != startVersions[key]
}
