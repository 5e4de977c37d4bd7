package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveSubgroup upserts a subgroup and keeps the owning trip's SubgroupIDs
// list in sync. The parent link is maintained here and nowhere else, so the
// two-way reference cannot drift between call sites.
func (s *Store) SaveSubgroup(g domain.Subgroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upsert(&s.subgroups, g.Clone(), func(x domain.Subgroup) uuid.UUID { return x.ID })
	s.persist(fileSubgroups, s.subgroups)
	s.linkChild(g.TripID, g.ID, childSubgroup)
	return nil
}

// GetSubgroup retrieves a subgroup by id.
// Returns domain.ErrNotFound if no subgroup with that id exists.
func (s *Store) GetSubgroup(id uuid.UUID) (domain.Subgroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.subgroups {
		if g.ID == id {
			return g.Clone(), nil
		}
	}
	return domain.Subgroup{}, fmt.Errorf("store.Store.GetSubgroup: %w", domain.ErrNotFound)
}

// GetSubgroups returns all subgroups belonging to a trip.
func (s *Store) GetSubgroups(tripID uuid.UUID) []domain.Subgroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Subgroup
	for _, g := range s.subgroups {
		if g.TripID == tripID {
			out = append(out, g.Clone())
		}
	}
	return out
}

// DeleteSubgroup removes a subgroup, unlinks it from its trip's
// SubgroupIDs, and deletes any invitations addressed to it — the same
// sweep the trip-delete cascade performs for doomed subgroups.
// Returns domain.ErrNotFound if it does not exist.
func (s *Store) DeleteSubgroup(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tripID uuid.UUID
	if !remove(&s.subgroups, func(g domain.Subgroup) bool {
		if g.ID == id {
			tripID = g.TripID
			return true
		}
		return false
	}) {
		return fmt.Errorf("store.Store.DeleteSubgroup: %w", domain.ErrNotFound)
	}
	s.persist(fileSubgroups, s.subgroups)
	s.unlinkChild(tripID, id, childSubgroup)
	if remove(&s.invitations, func(i domain.Invitation) bool {
		return i.SubgroupID != nil && *i.SubgroupID == id
	}) {
		s.persist(fileInvitations, s.invitations)
	}
	return nil
}

// childKind selects which of a trip's denormalized id lists to maintain.
type childKind int

const (
	childSubgroup childKind = iota
	childStop
	childMemory
)

// linkChild appends childID to the owning trip's id list if absent.
// Callers must hold the write lock. A missing trip is a no-op: the child
// keeps its TripID and the orphaned link simply never materializes.
func (s *Store) linkChild(tripID, childID uuid.UUID, kind childKind) {
	for i := range s.trips {
		if s.trips[i].ID != tripID {
			continue
		}
		list := s.childList(&s.trips[i], kind)
		for _, id := range *list {
			if id == childID {
				return
			}
		}
		*list = append(*list, childID)
		s.persist(fileTrips, s.trips)
		return
	}
}

// unlinkChild removes childID from the owning trip's id list.
// Callers must hold the write lock.
func (s *Store) unlinkChild(tripID, childID uuid.UUID, kind childKind) {
	for i := range s.trips {
		if s.trips[i].ID != tripID {
			continue
		}
		list := s.childList(&s.trips[i], kind)
		if remove(list, func(id uuid.UUID) bool { return id == childID }) {
			s.persist(fileTrips, s.trips)
		}
		return
	}
}

func (s *Store) childList(t *domain.Trip, kind childKind) *[]uuid.UUID {
	switch kind {
	case childStop:
		return &t.ItineraryStopIDs
	case childMemory:
		return &t.MemoryIDs
	default:
		return &t.SubgroupIDs
	}
}
