package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelStop is a planned or current waypoint owned by one profile. Stops
// extend discovery beyond the owner's pinned location.
type TravelStop struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ProfileID    uuid.UUID  `json:"profile_id" db:"profile_id"`
	LocationName string     `json:"location_name" db:"location_name"`
	Lat          *float64   `json:"lat" db:"lat"`
	Lon          *float64   `json:"lon" db:"lon"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      *time.Time `json:"end_date" db:"end_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// HasCoordinates reports whether the stop carries a usable location.
func (s *TravelStop) HasCoordinates() bool {
	return s.Lat != nil && s.Lon != nil
}
