package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-board-backend/internal/booking"
)

// mockStore is a mock implementation of the status.Store interface.
type mockStore struct {
	GetAllFunc func(ctx context.Context) (map[string]string, error)
	SetFunc    func(ctx context.Context, key, uiStatus string) error

	mu       sync.Mutex
	setCalls []string
}

func (m *mockStore) GetAll(ctx context.Context) (map[string]string, error) {
	if m.GetAllFunc == nil {
		return map[string]string{}, nil
	}
	return m.GetAllFunc(ctx)
}

func (m *mockStore) Set(ctx context.Context, key, uiStatus string) error {
	m.mu.Lock()
	m.setCalls = append(m.setCalls, key+"="+uiStatus)
	m.mu.Unlock()
	if m.SetFunc == nil {
		return nil
	}
	return m.SetFunc(ctx, key, uiStatus)
}

func (m *mockStore) Clear(ctx context.Context, key string) error {
	return m.Set(ctx, key, "")
}

func (m *mockStore) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.setCalls...)
}

const testKey = "09:00–11:00_Urban"

func TestOverlay_OptimisticBeforeSettlement(t *testing.T) {
	release := make(chan struct{})
	store := &mockStore{
		SetFunc: func(ctx context.Context, key, uiStatus string) error {
			<-release
			return nil
		},
	}
	o := NewOverlay(store)

	done := make(chan error, 1)
	go func() { done <- o.SetStatus(context.Background(), testKey, "arrived") }()

	// The new status is visible, and the key marked busy, before the
	// store call resolves.
	assert.Eventually(t, func() bool {
		return o.InFlight(testKey) && o.Snapshot()[testKey] == "arrived"
	}, time.Second, 5*time.Millisecond)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, o.InFlight(testKey))
	assert.Equal(t, "arrived", o.Snapshot()[testKey])
}

func TestOverlay_RollbackOnFailure(t *testing.T) {
	t.Run("restores previous value", func(t *testing.T) {
		store := &mockStore{}
		o := NewOverlay(store)
		require.NoError(t, o.SetStatus(context.Background(), testKey, "arrived"))

		store.SetFunc = func(ctx context.Context, key, uiStatus string) error {
			return booking.ErrUpstream
		}
		err := o.SetStatus(context.Background(), testKey, "entered")
		assert.ErrorIs(t, err, booking.ErrUpstream)
		assert.Equal(t, "arrived", o.Snapshot()[testKey])
		assert.False(t, o.InFlight(testKey))
	})

	t.Run("removes entry that did not exist", func(t *testing.T) {
		store := &mockStore{
			SetFunc: func(ctx context.Context, key, uiStatus string) error {
				return booking.ErrUpstream
			},
		}
		o := NewOverlay(store)

		err := o.SetStatus(context.Background(), testKey, "arrived")
		assert.ErrorIs(t, err, booking.ErrUpstream)
		assert.NotContains(t, o.Snapshot(), testKey)
	})
}

func TestOverlay_SetTwiceIsIdempotent(t *testing.T) {
	o := NewOverlay(&mockStore{})

	require.NoError(t, o.SetStatus(context.Background(), testKey, "arrived"))
	require.NoError(t, o.SetStatus(context.Background(), testKey, "arrived"))

	assert.Equal(t, map[string]string{testKey: "arrived"}, o.Snapshot())
}

func TestOverlay_DistinctKeysDoNotBlockEachOther(t *testing.T) {
	const otherKey = "12:00–14:00_Soft"

	releases := map[string]chan struct{}{
		testKey:  make(chan struct{}),
		otherKey: make(chan struct{}),
	}
	store := &mockStore{
		SetFunc: func(ctx context.Context, key, uiStatus string) error {
			<-releases[key]
			return nil
		},
	}
	o := NewOverlay(store)

	done := make(chan error, 2)
	go func() { done <- o.SetStatus(context.Background(), testKey, "arrived") }()
	go func() { done <- o.SetStatus(context.Background(), otherKey, "entered") }()

	// Both writes are optimistically visible and independently marked in
	// flight while neither has settled.
	assert.Eventually(t, func() bool {
		snap := o.Snapshot()
		return o.InFlight(testKey) && o.InFlight(otherKey) &&
			snap[testKey] == "arrived" && snap[otherKey] == "entered"
	}, time.Second, 5*time.Millisecond)

	// Settling one key releases only that key.
	close(releases[testKey])
	require.NoError(t, <-done)
	assert.False(t, o.InFlight(testKey))
	assert.True(t, o.InFlight(otherKey))

	close(releases[otherKey])
	require.NoError(t, <-done)
	assert.False(t, o.InFlight(otherKey))
}

func TestOverlay_Clear(t *testing.T) {
	store := &mockStore{}
	o := NewOverlay(store)

	require.NoError(t, o.SetStatus(context.Background(), testKey, "arrived"))
	require.NoError(t, o.Clear(context.Background(), testKey))

	assert.NotContains(t, o.Snapshot(), testKey)
	assert.Equal(t, []string{testKey + "=arrived", testKey + "="}, store.calls())
}

func TestOverlay_Validation(t *testing.T) {
	store := &mockStore{}
	o := NewOverlay(store)

	assert.ErrorIs(t, o.SetStatus(context.Background(), "", "arrived"), booking.ErrValidation)
	assert.ErrorIs(t, o.SetStatus(context.Background(), testKey, "garbage"), booking.ErrValidation)

	assert.Empty(t, o.Snapshot())
	assert.Empty(t, store.calls(), "rejected writes must not reach the store")
}

func TestOverlay_RefreshAppliesStoreTruth(t *testing.T) {
	store := &mockStore{
		GetAllFunc: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{testKey: "entered"}, nil
		},
	}
	o := NewOverlay(store)

	require.NoError(t, o.Refresh(context.Background()))
	assert.Equal(t, map[string]string{testKey: "entered"}, o.Snapshot())

	// A later fetch no longer reporting the key removes it.
	store.GetAllFunc = func(ctx context.Context) (map[string]string, error) {
		return map[string]string{}, nil
	}
	require.NoError(t, o.Refresh(context.Background()))
	assert.Empty(t, o.Snapshot())
}

func TestOverlay_StalePollDoesNotOverwriteNewerWrite(t *testing.T) {
	fetchStarted := make(chan struct{})
	releaseFetch := make(chan struct{})
	store := &mockStore{
		GetAllFunc: func(ctx context.Context) (map[string]string, error) {
			close(fetchStarted)
			<-releaseFetch
			// Stale ground truth from before the local write.
			return map[string]string{testKey: "entered"}, nil
		},
	}
	o := NewOverlay(store)

	refreshDone := make(chan error, 1)
	go func() { refreshDone <- o.Refresh(context.Background()) }()
	<-fetchStarted

	// A write lands while the fetch is outstanding.
	require.NoError(t, o.SetStatus(context.Background(), testKey, "arrived"))

	close(releaseFetch)
	require.NoError(t, <-refreshDone)

	// The slow read must not clobber the newer local value.
	assert.Equal(t, "arrived", o.Snapshot()[testKey])
}
