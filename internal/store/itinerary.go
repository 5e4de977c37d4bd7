package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveItineraryStop upserts a stop and keeps the owning trip's
// ItineraryStopIDs list in sync.
func (s *Store) SaveItineraryStop(st domain.ItineraryStop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upsert(&s.stops, st, func(x domain.ItineraryStop) uuid.UUID { return x.ID })
	s.persist(fileStops, s.stops)
	s.linkChild(st.TripID, st.ID, childStop)
	return nil
}

// GetItineraryStop retrieves a stop by id.
// Returns domain.ErrNotFound if no stop with that id exists.
func (s *Store) GetItineraryStop(id uuid.UUID) (domain.ItineraryStop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.stops {
		if st.ID == id {
			return st, nil
		}
	}
	return domain.ItineraryStop{}, fmt.Errorf("store.Store.GetItineraryStop: %w", domain.ErrNotFound)
}

// GetItineraryStops returns all stops belonging to a trip.
func (s *Store) GetItineraryStops(tripID uuid.UUID) []domain.ItineraryStop {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ItineraryStop
	for _, st := range s.stops {
		if st.TripID == tripID {
			out = append(out, st)
		}
	}
	return out
}

// DeleteItineraryStop removes a stop and unlinks it from its trip's
// ItineraryStopIDs. Returns domain.ErrNotFound if it does not exist.
func (s *Store) DeleteItineraryStop(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tripID uuid.UUID
	if !remove(&s.stops, func(st domain.ItineraryStop) bool {
		if st.ID == id {
			tripID = st.TripID
			return true
		}
		return false
	}) {
		return fmt.Errorf("store.Store.DeleteItineraryStop: %w", domain.ErrNotFound)
	}
	s.persist(fileStops, s.stops)
	s.unlinkChild(tripID, id, childStop)
	return nil
}
