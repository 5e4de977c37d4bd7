package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveLocation upserts a location keyed by (UserID, TripID): at most one
// live location record exists per user per trip, and a newer report
// replaces the previous one.
func (s *Store) SaveLocation(l domain.UserLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.locations {
		if s.locations[i].UserID == l.UserID && s.locations[i].TripID == l.TripID {
			s.locations[i] = l
			replaced = true
			break
		}
	}
	if !replaced {
		s.locations = append(s.locations, l)
	}
	s.persist(fileLocations, s.locations)
	return nil
}

// GetLocation retrieves the location record for one user on one trip.
// Returns domain.ErrNotFound if the user has never reported one.
func (s *Store) GetLocation(userID, tripID uuid.UUID) (domain.UserLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.locations {
		if l.UserID == userID && l.TripID == tripID {
			return l, nil
		}
	}
	return domain.UserLocation{}, fmt.Errorf("store.Store.GetLocation: %w", domain.ErrNotFound)
}

// GetLocations returns every member location reported for a trip.
func (s *Store) GetLocations(tripID uuid.UUID) []domain.UserLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.UserLocation
	for _, l := range s.locations {
		if l.TripID == tripID {
			out = append(out, l)
		}
	}
	return out
}
