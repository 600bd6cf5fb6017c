package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-board-backend/internal/booking"
)

// sheetStub simulates the upstream sheet API: plain GET serves the
// booking list, action=setStatus records a write.
type sheetStub struct {
	mu           sync.Mutex
	bookings     []booking.Booking
	writes       []url.Values
	writeSuccess bool
	listStatus   int
}

func newSheetStub(bookings []booking.Booking) *sheetStub {
	return &sheetStub{bookings: bookings, writeSuccess: true, listStatus: http.StatusOK}
}

func (s *sheetStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if r.URL.Query().Get("action") == "setStatus" {
			s.writes = append(s.writes, r.URL.Query())
			json.NewEncoder(w).Encode(map[string]any{"success": s.writeSuccess})
			return
		}

		if s.listStatus != http.StatusOK {
			w.WriteHeader(s.listStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"bookings": s.bookings})
	}
}

func (s *sheetStub) recordedWrites() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.writes...)
}

func TestProxyStore_GetAll(t *testing.T) {
	stub := newSheetStub([]booking.Booking{
		{ID: "a1", Row: 2, Time: "09:00–11:00", Hall: "Urban", Status: "arrived"},
		{ID: "a2", Row: 3, Time: "12:00–14:00", Hall: "Soft", Status: "done"},
		{ID: "a3", Row: 4, Time: "15:00–16:00", Hall: "Монро", Status: "booked"},
		{ID: "a4", Row: 5, Time: "17:00–18:00", Hall: "Моне", Status: "none"},
	})
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	s := NewProxyStore(server.URL, 5*time.Second)
	statuses, err := s.GetAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"09:00–11:00_Urban": "arrived",
		"12:00–14:00_Soft":  "entered",
	}, statuses)
}

func TestProxyStore_Set(t *testing.T) {
	stub := newSheetStub([]booking.Booking{
		{ID: "a1", Row: 2, Time: "09:00–11:00", Hall: "Urban"},
	})
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	s := NewProxyStore(server.URL, 5*time.Second)
	require.NoError(t, s.Set(context.Background(), "09:00–11:00_Urban", "entered"))

	writes := stub.recordedWrites()
	require.Len(t, writes, 1)
	assert.Equal(t, "setStatus", writes[0].Get("action"))
	assert.Equal(t, "2", writes[0].Get("row"))
	assert.Equal(t, "a1", writes[0].Get("id"))
	// The sheet stores the storage vocabulary, not the UI one.
	assert.Equal(t, "done", writes[0].Get("status"))
}

func TestProxyStore_ClearWritesNone(t *testing.T) {
	stub := newSheetStub([]booking.Booking{
		{ID: "a1", Row: 2, Time: "09:00–11:00", Hall: "Urban", Status: "arrived"},
	})
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	s := NewProxyStore(server.URL, 5*time.Second)
	require.NoError(t, s.Clear(context.Background(), "09:00–11:00_Urban"))

	writes := stub.recordedWrites()
	require.Len(t, writes, 1)
	assert.Equal(t, "none", writes[0].Get("status"))
}

func TestProxyStore_SetErrors(t *testing.T) {
	stub := newSheetStub([]booking.Booking{
		{ID: "a1", Row: 2, Time: "09:00–11:00", Hall: "Urban"},
	})
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	ctx := context.Background()

	t.Run("empty key", func(t *testing.T) {
		s := NewProxyStore(server.URL, 5*time.Second)
		assert.ErrorIs(t, s.Set(ctx, "", "arrived"), booking.ErrValidation)
		assert.Empty(t, stub.recordedWrites())
	})

	t.Run("rejected status", func(t *testing.T) {
		s := NewProxyStore(server.URL, 5*time.Second)
		assert.ErrorIs(t, s.Set(ctx, "09:00–11:00_Urban", "garbage"), booking.ErrValidation)
		assert.Empty(t, stub.recordedWrites())
	})

	t.Run("unknown key", func(t *testing.T) {
		s := NewProxyStore(server.URL, 5*time.Second)
		assert.ErrorIs(t, s.Set(ctx, "19:00–20:00_Urban", "arrived"), booking.ErrNotFound)
	})

	t.Run("sheet rejects the write", func(t *testing.T) {
		stub.writeSuccess = false
		defer func() { stub.writeSuccess = true }()

		s := NewProxyStore(server.URL, 5*time.Second)
		assert.ErrorIs(t, s.Set(ctx, "09:00–11:00_Urban", "arrived"), booking.ErrUpstream)
	})

	t.Run("list fetch fails", func(t *testing.T) {
		stub.listStatus = http.StatusBadGateway
		defer func() { stub.listStatus = http.StatusOK }()

		s := NewProxyStore(server.URL, 5*time.Second)
		assert.ErrorIs(t, s.Set(ctx, "09:00–11:00_Urban", "arrived"), booking.ErrUpstream)
	})
}

func TestProxyStore_DegradesWithoutBaseURL(t *testing.T) {
	s := NewProxyStore("", 5*time.Second)
	ctx := context.Background()

	_, err := s.GetAll(ctx)
	assert.ErrorIs(t, err, booking.ErrConfig)
	assert.ErrorIs(t, s.Set(ctx, "09:00–11:00_Urban", "arrived"), booking.ErrConfig)
	assert.ErrorIs(t, s.Clear(ctx, "09:00–11:00_Urban"), booking.ErrConfig)
}
