package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/internal/store"
)

// InvitationService implements the invitation lifecycle for both flavors.
// States move one way only: pending → accepted or pending → declined; an
// invitation in a terminal state cannot transition again.
type InvitationService struct {
	store *store.Store
	trips *TripService
}

// NewInvitationService constructs an InvitationService. It holds a
// TripService because accepting a trip invitation re-runs the same
// date-overlap check as creating or joining a trip.
func NewInvitationService(st *store.Store, trips *TripService) *InvitationService {
	return &InvitationService{store: st, trips: trips}
}

// InviteToTrip creates a pending trip invitation for one user.
// Fails with domain.ErrConflict if the user is already a member.
func (s *InvitationService) InviteToTrip(tripID, invitedBy, invited uuid.UUID) (domain.Invitation, error) {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.InvitationService.InviteToTrip: %w", err)
	}
	if trip.IsMember(invited) {
		return domain.Invitation{}, fmt.Errorf("%w: user is already a member of %q", domain.ErrConflict, trip.Name)
	}

	inv := domain.NewTripInvitation(tripID, invitedBy, invited)
	if err := s.store.SaveInvitation(inv); err != nil {
		return domain.Invitation{}, fmt.Errorf("service.InvitationService.InviteToTrip: %w", err)
	}
	return inv, nil
}

// InviteToSubgroup creates one pending subgroup invitation per selected
// user. Users who are already subgroup members or who already hold an
// outstanding pending invitation are skipped, not failed — the multi-select
// UI may resubmit overlapping selections.
func (s *InvitationService) InviteToSubgroup(subgroupID, invitedBy uuid.UUID, userIDs []uuid.UUID) ([]domain.Invitation, error) {
	group, err := s.store.GetSubgroup(subgroupID)
	if err != nil {
		return nil, fmt.Errorf("service.InvitationService.InviteToSubgroup: %w", err)
	}

	pending := map[uuid.UUID]bool{}
	for _, inv := range s.store.GetInvitations(subgroupID, domain.InvitationPending) {
		pending[inv.InvitedUserID] = true
	}

	var created []domain.Invitation
	for _, userID := range userIDs {
		if group.HasMember(userID) || pending[userID] {
			continue
		}
		inv := domain.NewSubgroupInvitation(subgroupID, invitedBy, userID)
		if err := s.store.SaveInvitation(inv); err != nil {
			return created, fmt.Errorf("service.InvitationService.InviteToSubgroup: %w", err)
		}
		created = append(created, inv)
	}
	return created, nil
}

// AcceptTripInvitation accepts a pending trip invitation on behalf of
// userID: the invitation must exist, be addressed to the caller, still be
// pending, and its trip must still exist. The date-overlap check runs
// again at acceptance time — the user's calendar may have changed since
// the invitation was issued. On success the user joins the trip's member
// list and the invitation is marked accepted.
func (s *InvitationService) AcceptTripInvitation(invitationID, userID uuid.UUID) (domain.Trip, error) {
	inv, err := s.pendingFor(invitationID, userID)
	if err != nil {
		return domain.Trip{}, err
	}
	if inv.Type != domain.InvitationTypeTrip || inv.TripID == nil {
		return domain.Trip{}, fmt.Errorf("%w: not a trip invitation", domain.ErrValidation)
	}

	trip, err := s.store.GetTrip(*inv.TripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.InvitationService.AcceptTripInvitation: trip: %w", err)
	}
	if other, ok := s.trips.FindOverlappingTrip(userID, trip.StartDate, trip.EndDate, trip.ID); ok {
		return domain.Trip{}, fmt.Errorf("%w: dates overlap with trip %q", domain.ErrConflict, other.Name)
	}

	if !trip.IsMember(userID) {
		trip.MemberIDs = append(trip.MemberIDs, userID)
	}
	if err := s.store.SaveTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.InvitationService.AcceptTripInvitation: %w", err)
	}

	inv.Status = domain.InvitationAccepted
	if err := s.store.SaveInvitation(inv); err != nil {
		return domain.Trip{}, fmt.Errorf("service.InvitationService.AcceptTripInvitation: %w", err)
	}
	return trip, nil
}

// AcceptSubgroupInvitation accepts a pending subgroup invitation: the user
// joins the subgroup's member list and the invitation is marked accepted.
func (s *InvitationService) AcceptSubgroupInvitation(invitationID, userID uuid.UUID) (domain.Subgroup, error) {
	inv, err := s.pendingFor(invitationID, userID)
	if err != nil {
		return domain.Subgroup{}, err
	}
	if inv.Type != domain.InvitationTypeSubgroup || inv.SubgroupID == nil {
		return domain.Subgroup{}, fmt.Errorf("%w: not a subgroup invitation", domain.ErrValidation)
	}

	group, err := s.store.GetSubgroup(*inv.SubgroupID)
	if err != nil {
		return domain.Subgroup{}, fmt.Errorf("service.InvitationService.AcceptSubgroupInvitation: subgroup: %w", err)
	}

	if !group.HasMember(userID) {
		group.MemberIDs = append(group.MemberIDs, userID)
	}
	if err := s.store.SaveSubgroup(group); err != nil {
		return domain.Subgroup{}, fmt.Errorf("service.InvitationService.AcceptSubgroupInvitation: %w", err)
	}

	inv.Status = domain.InvitationAccepted
	if err := s.store.SaveInvitation(inv); err != nil {
		return domain.Subgroup{}, fmt.Errorf("service.InvitationService.AcceptSubgroupInvitation: %w", err)
	}
	return group, nil
}

// DeclineInvitation declines a pending invitation of either flavor.
// A declined invitation stays on record but no longer blocks re-inviting
// the user (only pending invitations do).
func (s *InvitationService) DeclineInvitation(invitationID, userID uuid.UUID) error {
	inv, err := s.pendingFor(invitationID, userID)
	if err != nil {
		return err
	}
	inv.Status = domain.InvitationDeclined
	if err := s.store.SaveInvitation(inv); err != nil {
		return fmt.Errorf("service.InvitationService.DeclineInvitation: %w", err)
	}
	return nil
}

// pendingFor loads an invitation and checks the shared acceptance
// preconditions: it exists, it is addressed to userID, and it is pending.
func (s *InvitationService) pendingFor(invitationID, userID uuid.UUID) (domain.Invitation, error) {
	inv, err := s.store.GetInvitation(invitationID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.InvitationService: invitation: %w", err)
	}
	if inv.InvitedUserID != userID {
		return domain.Invitation{}, fmt.Errorf("%w: invitation is addressed to another user", domain.ErrUnauthorized)
	}
	if inv.Status != domain.InvitationPending {
		return domain.Invitation{}, fmt.Errorf("%w: invitation is already %s", domain.ErrUnauthorized, inv.Status)
	}
	return inv, nil
}
