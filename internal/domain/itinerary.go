package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItineraryStop is a single planned stop on a trip's itinerary.
//
// SubgroupID is nil when the stop belongs to the shared "All" itinerary.
// A stop can additionally be tagged into a user's personal "My Itinerary"
// via IsInMyItinerary, independent of which subgroup owns it.
//
// IsCreatedInMySubgroup marks stops created directly under the "My" pseudo
// subgroup; such stops are private and never appear in the "All" view.
type ItineraryStop struct {
	ID                         uuid.UUID  `json:"id"`
	Title                      string     `json:"title"`
	Location                   string     `json:"location"`
	Date                       time.Time  `json:"date"`
	Time                       time.Time  `json:"time"`
	TripID                     uuid.UUID  `json:"trip_id"`
	SubgroupID                 *uuid.UUID `json:"subgroup_id,omitempty"`
	CreatedByUserID            uuid.UUID  `json:"created_by_user_id"`
	IsInMyItinerary            bool       `json:"is_in_my_itinerary"`
	AddedToMyItineraryByUserID *uuid.UUID `json:"added_to_my_itinerary_by_user_id,omitempty"`
	IsCreatedInMySubgroup      bool       `json:"is_created_in_my_subgroup"`
	Category                   string     `json:"category,omitempty"`
}

// NewItineraryStop constructs a stop with a fresh id. Pass a nil subgroupID
// for a stop on the shared "All" itinerary. The category is normalized to a
// lowercase hyphenated slug so that "Food Tour" and "food tour" filter as
// the same category.
func NewItineraryStop(title, location string, date, tod time.Time, tripID uuid.UUID, subgroupID *uuid.UUID, createdBy uuid.UUID, category string) ItineraryStop {
	return ItineraryStop{
		ID:              uuid.New(),
		Title:           title,
		Location:        location,
		Date:            date,
		Time:            tod,
		TripID:          tripID,
		SubgroupID:      subgroupID,
		CreatedByUserID: createdBy,
		Category:        SlugifyCategory(category),
	}
}

// SlugifyCategory lowercases and hyphenates a free-text category label.
// Empty input stays empty (no category).
func SlugifyCategory(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(slug), "-")
}
