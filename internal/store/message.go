package store

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveMessage upserts a message by id and rewrites the messages file.
func (s *Store) SaveMessage(m domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upsert(&s.messages, m, func(x domain.Message) uuid.UUID { return x.ID })
	s.persist(fileMessages, s.messages)
	return nil
}

// GetMessages returns a trip's messages for one chat, ordered by timestamp
// ascending. A nil subgroupID selects the trip-wide general chat; a non-nil
// id selects that subgroup's chat.
func (s *Store) GetMessages(tripID uuid.UUID, subgroupID *uuid.UUID) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Message
	for _, m := range s.messages {
		if m.TripID != tripID {
			continue
		}
		if !sameChat(m.SubgroupID, subgroupID) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// sameChat matches a message's subgroup against the requested chat:
// both nil (general chat) or both the same subgroup id.
func sameChat(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
