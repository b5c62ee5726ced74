package model

import "time"

// GeoLocation is an immutable coordinate pair. A task owns one long-lived
// target location; every check-in/out creates a fresh event location that is
// never mutated afterwards.
type GeoLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Lat       float64   `gorm:"not null" json:"lat"`
	Lng       float64   `gorm:"not null" json:"lng"`
	Name      string    `json:"name,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
