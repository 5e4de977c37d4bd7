package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveMemory upserts a memory and keeps the owning trip's MemoryIDs list
// in sync.
func (s *Store) SaveMemory(m domain.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upsert(&s.memories, m, func(x domain.Memory) uuid.UUID { return x.ID })
	s.persist(fileMemories, s.memories)
	s.linkChild(m.TripID, m.ID, childMemory)
	return nil
}

// GetMemory retrieves a memory by id.
// Returns domain.ErrNotFound if no memory with that id exists.
func (s *Store) GetMemory(id uuid.UUID) (domain.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.memories {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Memory{}, fmt.Errorf("store.Store.GetMemory: %w", domain.ErrNotFound)
}

// GetMemories returns all memories belonging to a trip.
func (s *Store) GetMemories(tripID uuid.UUID) []domain.Memory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Memory
	for _, m := range s.memories {
		if m.TripID == tripID {
			out = append(out, m)
		}
	}
	return out
}

// DeleteMemory removes a memory and unlinks it from its trip's MemoryIDs.
// Returns domain.ErrNotFound if it does not exist.
func (s *Store) DeleteMemory(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tripID uuid.UUID
	if !remove(&s.memories, func(m domain.Memory) bool {
		if m.ID == id {
			tripID = m.TripID
			return true
		}
		return false
	}) {
		return fmt.Errorf("store.Store.DeleteMemory: %w", domain.ErrNotFound)
	}
	s.persist(fileMemories, s.memories)
	s.unlinkChild(tripID, id, childMemory)
	return nil
}
