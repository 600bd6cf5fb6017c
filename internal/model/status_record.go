package model

import "time"

// StatusRecord is one row of the ephemeral status overlay: the visit
// status currently attached to a booking key. Values use the storage
// vocabulary ("arrived"/"done"/...), not the UI one.
type StatusRecord struct {
	Key       string    `gorm:"primaryKey;size:256"`
	Status    string    `gorm:"size:32;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
