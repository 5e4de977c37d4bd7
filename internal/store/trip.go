package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveTrip upserts a trip by id and rewrites the trips file. The trip is
// cloned on the way in, so the caller's ID slices never become store state.
//
// Unlike most writes, a failed file write here rolls the in-memory
// insertion back and surfaces the error: trip creation is the one place
// the business layer promises "not persisted" on failure.
func (s *Store) SaveTrip(t domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := append([]domain.Trip(nil), s.trips...)
	upsert(&s.trips, t.Clone(), func(x domain.Trip) uuid.UUID { return x.ID })
	if err := s.writeFile(fileTrips, s.trips); err != nil {
		s.trips = prev
		s.log.Error("trip save rolled back", "trip_id", t.ID, "error", err)
		return fmt.Errorf("store.Store.SaveTrip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by id.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *Store) GetTrip(id uuid.UUID) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tripByID(id)
}

// tripByID is GetTrip without locking, for use inside write operations.
// Like every trip getter it returns a detached clone.
func (s *Store) tripByID(id uuid.UUID) (domain.Trip, error) {
	for _, t := range s.trips {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return domain.Trip{}, fmt.Errorf("store.Store.GetTrip: %w", domain.ErrNotFound)
}

// GetTripByInviteCode retrieves a trip by its invite code, compared
// case-insensitively. Returns domain.ErrNotFound on no match.
func (s *Store) GetTripByInviteCode(code string) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.trips {
		if strings.EqualFold(t.InviteCode, code) {
			return t.Clone(), nil
		}
	}
	return domain.Trip{}, fmt.Errorf("store.Store.GetTripByInviteCode: %w", domain.ErrNotFound)
}

// GetAllTrips returns a detached copy of the trips collection.
func (s *Store) GetAllTrips() []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

// GetUserAccessibleTrips returns the trips the user is a member of,
// ordered by start date ascending.
func (s *Store) GetUserAccessibleTrips(userID uuid.UUID) []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Trip
	for _, t := range s.trips {
		if t.IsMember(userID) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

// DeleteTrip removes a trip and cascades to everything that references it:
// subgroups, itinerary stops, messages, locations, and invitations. The
// whole cascade runs under one write lock, so concurrent readers never see
// a half-deleted trip.
//
// Returns domain.ErrNotFound if no trip with that id exists; in that case
// nothing is deleted.
func (s *Store) DeleteTrip(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !remove(&s.trips, func(t domain.Trip) bool { return t.ID == id }) {
		return fmt.Errorf("store.Store.DeleteTrip: %w", domain.ErrNotFound)
	}
	s.persist(fileTrips, s.trips)

	// Collect the trip's subgroup ids first so their invitations go too.
	doomed := map[uuid.UUID]bool{}
	for _, g := range s.subgroups {
		if g.TripID == id {
			doomed[g.ID] = true
		}
	}

	if remove(&s.subgroups, func(g domain.Subgroup) bool { return g.TripID == id }) {
		s.persist(fileSubgroups, s.subgroups)
	}
	if remove(&s.stops, func(st domain.ItineraryStop) bool { return st.TripID == id }) {
		s.persist(fileStops, s.stops)
	}
	if remove(&s.messages, func(m domain.Message) bool { return m.TripID == id }) {
		s.persist(fileMessages, s.messages)
	}
	if remove(&s.locations, func(l domain.UserLocation) bool { return l.TripID == id }) {
		s.persist(fileLocations, s.locations)
	}
	if remove(&s.invitations, func(i domain.Invitation) bool {
		if i.TripID != nil && *i.TripID == id {
			return true
		}
		return i.SubgroupID != nil && doomed[*i.SubgroupID]
	}) {
		s.persist(fileInvitations, s.invitations)
	}
	if remove(&s.memories, func(m domain.Memory) bool { return m.TripID == id }) {
		s.persist(fileMemories, s.memories)
	}
	return nil
}
