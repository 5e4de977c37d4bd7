package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/internal/store"
)

// SubgroupService implements business logic for subgroups within a trip.
type SubgroupService struct {
	store *store.Store
}

// NewSubgroupService constructs a SubgroupService backed by the store.
func NewSubgroupService(st *store.Store) *SubgroupService {
	return &SubgroupService{store: st}
}

// CreateSubgroup validates and persists a new subgroup under an existing
// trip. The creator becomes the first member and therefore the subgroup
// admin by convention.
func (s *SubgroupService) CreateSubgroup(name, colorHex string, tripID, createdBy uuid.UUID) (domain.Subgroup, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Subgroup{}, fmt.Errorf("%w: subgroup name is required", domain.ErrValidation)
	}
	if _, err := s.store.GetTrip(tripID); err != nil {
		return domain.Subgroup{}, fmt.Errorf("service.SubgroupService.CreateSubgroup: %w", err)
	}

	group := domain.NewSubgroup(name, colorHex, tripID, createdBy)
	if err := s.store.SaveSubgroup(group); err != nil {
		return domain.Subgroup{}, fmt.Errorf("service.SubgroupService.CreateSubgroup: %w", err)
	}
	return group, nil
}

// DeleteSubgroup removes a subgroup; the store unlinks it from the owning
// trip's subgroup list.
func (s *SubgroupService) DeleteSubgroup(id uuid.UUID) error {
	if err := s.store.DeleteSubgroup(id); err != nil {
		return fmt.Errorf("service.SubgroupService.DeleteSubgroup: %w", err)
	}
	return nil
}

// AvailableToInvite returns the trip members who could still be invited to
// the subgroup: not already subgroup members and without an outstanding
// pending invitation. A user who declined an earlier invitation appears
// here again — only pending invitations block re-inviting.
func (s *SubgroupService) AvailableToInvite(subgroupID uuid.UUID) ([]domain.User, error) {
	group, err := s.store.GetSubgroup(subgroupID)
	if err != nil {
		return nil, fmt.Errorf("service.SubgroupService.AvailableToInvite: %w", err)
	}
	trip, err := s.store.GetTrip(group.TripID)
	if err != nil {
		return nil, fmt.Errorf("service.SubgroupService.AvailableToInvite: trip: %w", err)
	}

	pending := map[uuid.UUID]bool{}
	for _, inv := range s.store.GetInvitations(subgroupID, domain.InvitationPending) {
		pending[inv.InvitedUserID] = true
	}

	var out []domain.User
	for _, memberID := range trip.MemberIDs {
		if group.HasMember(memberID) || pending[memberID] {
			continue
		}
		user, err := s.store.GetUser(memberID)
		if err != nil {
			// A member id without a user record is stale data, not a
			// reason to fail the whole listing.
			continue
		}
		out = append(out, user)
	}
	return out, nil
}
