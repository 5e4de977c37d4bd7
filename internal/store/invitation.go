package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveInvitation upserts an invitation by id. State transitions are the
// service layer's concern; the store persists whatever it is handed.
func (s *Store) SaveInvitation(inv domain.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upsert(&s.invitations, inv, func(x domain.Invitation) uuid.UUID { return x.ID })
	s.persist(fileInvitations, s.invitations)
	return nil
}

// GetInvitation retrieves an invitation by id.
// Returns domain.ErrNotFound if no invitation with that id exists.
func (s *Store) GetInvitation(id uuid.UUID) (domain.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invitation{}, fmt.Errorf("store.Store.GetInvitation: %w", domain.ErrNotFound)
}

// GetPendingInvitations returns all pending invitations (both flavors)
// addressed to a user.
func (s *Store) GetPendingInvitations(userID uuid.UUID) []domain.Invitation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Invitation
	for _, inv := range s.invitations {
		if inv.InvitedUserID == userID && inv.Status == domain.InvitationPending {
			out = append(out, inv)
		}
	}
	return out
}

// GetInvitations returns a subgroup's invitations in the given status.
// Used to filter users with an outstanding pending invitation out of the
// "available to invite" list.
func (s *Store) GetInvitations(subgroupID uuid.UUID, status domain.InvitationStatus) []domain.Invitation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Invitation
	for _, inv := range s.invitations {
		if inv.SubgroupID != nil && *inv.SubgroupID == subgroupID && inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// DeleteInvitation removes an invitation by id.
// Returns domain.ErrNotFound if no invitation with that id exists.
func (s *Store) DeleteInvitation(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !remove(&s.invitations, func(inv domain.Invitation) bool { return inv.ID == id }) {
		return fmt.Errorf("store.Store.DeleteInvitation: %w", domain.ErrNotFound)
	}
	s.persist(fileInvitations, s.invitations)
	return nil
}

// DeletePendingTripInvitations removes any pending trip invitations for a
// (user, trip) pair. No error when none exist — joining by invite code
// simply clears whatever invitation would now be redundant.
func (s *Store) DeletePendingTripInvitations(userID, tripID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if remove(&s.invitations, func(inv domain.Invitation) bool {
		return inv.Type == domain.InvitationTypeTrip &&
			inv.Status == domain.InvitationPending &&
			inv.InvitedUserID == userID &&
			inv.TripID != nil && *inv.TripID == tripID
	}) {
		s.persist(fileInvitations, s.invitations)
	}
}
