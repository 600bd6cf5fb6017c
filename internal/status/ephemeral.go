package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-board-backend/internal/booking"
	"booking-board-backend/internal/model"
)

// ephemeralStore keeps the overlay in the process-lifetime in-memory
// database. No upstream persistence: a restart starts from a blank slate.
type ephemeralStore struct {
	db *gorm.DB
}

// NewEphemeralStore creates the in-memory store on top of an initialized
// database (see db.InitEphemeral).
func NewEphemeralStore(db *gorm.DB) Store {
	return &ephemeralStore{db: db}
}

func (s *ephemeralStore) GetAll(ctx context.Context) (map[string]string, error) {
	var records []model.StatusRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load status records: %w", err)
	}

	statuses := make(map[string]string, len(records))
	for _, r := range records {
		if !booking.Visible(r.Status) {
			continue
		}
		statuses[r.Key] = booking.StorageToUI(r.Status)
	}
	return statuses, nil
}

func (s *ephemeralStore) Set(ctx context.Context, key, uiStatus string) error {
	if key == "" {
		return fmt.Errorf("%w: missing booking key", booking.ErrValidation)
	}

	storage := booking.UIToStorage(uiStatus)
	if storage == "" {
		return fmt.Errorf("%w: unrecognized status %q", booking.ErrValidation, uiStatus)
	}

	// A clear removes the row outright instead of storing the "none"
	// placeholder.
	if storage == booking.StatusNone {
		return s.delete(ctx, key)
	}

	record := model.StatusRecord{
		Key:       key,
		Status:    storage,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save status for %q: %w", key, err)
	}
	return nil
}

func (s *ephemeralStore) Clear(ctx context.Context, key string) error {
	return s.Set(ctx, key, "")
}

func (s *ephemeralStore) delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&model.StatusRecord{}, "key = ?", key).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to clear status for %q: %w", key, err)
	}
	return nil
}
