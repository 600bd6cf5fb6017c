package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"booking-board-backend/internal/model"
)

// The overlay must not outlive the process: an in-memory database gives
// the ephemeral store real SQL semantics while guaranteeing a reset on
// every restart.
const ephemeralDSN = "file::memory:?cache=shared"

// InitEphemeral opens the in-memory database backing the ephemeral status
// store and runs migrations.
func InitEphemeral() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(ephemeralDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := db.AutoMigrate(&model.StatusRecord{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Println("ephemeral status database initialized")
	return db, nil
}
