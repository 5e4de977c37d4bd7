package domain

import (
	"time"

	"github.com/google/uuid"
)

// Memory is a photo album entry attached to a trip.
type Memory struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	Photos [][]byte  `json:"photos"`
	Notes  string    `json:"notes,omitempty"`
	Date   time.Time `json:"date"`
}

// NewMemory constructs a memory with a fresh id.
func NewMemory(tripID uuid.UUID, photos [][]byte, notes string, date time.Time) Memory {
	return Memory{
		ID:     uuid.New(),
		TripID: tripID,
		Photos: photos,
		Notes:  notes,
		Date:   date,
	}
}
