package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserLocation is a user's most recent reported position within a trip.
// The store keeps at most one record per (UserID, TripID) pair — saving a
// newer location replaces the previous one.
type UserLocation struct {
	UserID    uuid.UUID `json:"user_id"`
	TripID    uuid.UUID `json:"trip_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsLive    bool      `json:"is_live"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserLocation constructs a live location report stamped with now.
func NewUserLocation(userID, tripID uuid.UUID, lat, lon float64) UserLocation {
	return UserLocation{
		UserID:    userID,
		TripID:    tripID,
		Latitude:  lat,
		Longitude: lon,
		IsLive:    true,
		Timestamp: time.Now().UTC(),
	}
}
