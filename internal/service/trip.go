// Package service contains the business rules layered on top of the store:
// trip date-overlap exclusion, membership and admin authorization, the
// invitation lifecycle, and itinerary tagging/filtering. Services validate
// inputs and orchestrate store calls; no file I/O lives here.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/internal/store"
)

// TripService implements business logic for trip operations.
type TripService struct {
	store *store.Store
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(st *store.Store) *TripService {
	return &TripService{store: st}
}

// SaveTripWithValidation validates and persists a new or edited trip on
// behalf of userID. On any validation failure the trip is not persisted;
// on a write failure the store rolls the insertion back.
//
// Rules, in order: non-empty name, start date not after end date, and no
// date overlap with any other trip the user is a member of.
func (s *TripService) SaveTripWithValidation(trip domain.Trip, userID uuid.UUID) (domain.Trip, error) {
	if strings.TrimSpace(trip.Name) == "" {
		return domain.Trip{}, fmt.Errorf("%w: trip name is required", domain.ErrValidation)
	}
	if trip.StartDate.After(trip.EndDate) {
		return domain.Trip{}, fmt.Errorf("%w: start date must not be after end date", domain.ErrValidation)
	}
	if other, ok := s.FindOverlappingTrip(userID, trip.StartDate, trip.EndDate, trip.ID); ok {
		return domain.Trip{}, fmt.Errorf("%w: dates overlap with trip %q", domain.ErrConflict, other.Name)
	}
	if err := s.store.SaveTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SaveTripWithValidation: %w", err)
	}
	return trip, nil
}

// FindOverlappingTrip scans the trips userID is a member of, skipping
// excludeTripID, and returns the first whose [StartDate, EndDate] range
// intersects [start, end] with inclusive bounds.
func (s *TripService) FindOverlappingTrip(userID uuid.UUID, start, end time.Time, excludeTripID uuid.UUID) (domain.Trip, bool) {
	for _, t := range s.store.GetAllTrips() {
		if t.ID == excludeTripID || !t.IsMember(userID) {
			continue
		}
		if t.Overlaps(start, end) {
			return t, true
		}
	}
	return domain.Trip{}, false
}

// JoinTripWithCode adds userID to the trip matching the invite code
// (compared case-insensitively). Fails with domain.ErrNotFound for an
// unknown code, domain.ErrConflict when the user is already a member or
// the trip's dates overlap another of the user's trips. On success any
// pending trip invitation for the pair is deleted — the code join made
// it redundant.
func (s *TripService) JoinTripWithCode(code string, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.store.GetTripByInviteCode(code)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.JoinTripWithCode: invite code: %w", err)
	}
	if trip.IsMember(userID) {
		return domain.Trip{}, fmt.Errorf("%w: already a member of %q", domain.ErrConflict, trip.Name)
	}
	if other, ok := s.FindOverlappingTrip(userID, trip.StartDate, trip.EndDate, trip.ID); ok {
		return domain.Trip{}, fmt.Errorf("%w: dates overlap with trip %q", domain.ErrConflict, other.Name)
	}

	trip.MemberIDs = append(trip.MemberIDs, userID)
	if err := s.store.SaveTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.JoinTripWithCode: %w", err)
	}
	s.store.DeletePendingTripInvitations(userID, trip.ID)
	return trip, nil
}

// RemoveMemberFromTrip removes targetID from the trip's member list.
// Only the trip's admin may remove members, and never themself —
// the admin path out of a trip does not exist.
func (s *TripService) RemoveMemberFromTrip(tripID, actingUserID, targetID uuid.UUID) error {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.RemoveMemberFromTrip: %w", err)
	}
	if !trip.IsAdmin(actingUserID) {
		return fmt.Errorf("%w: only the trip admin can remove members", domain.ErrUnauthorized)
	}
	if actingUserID == targetID {
		return fmt.Errorf("%w: the admin cannot remove themself", domain.ErrUnauthorized)
	}
	if !trip.IsMember(targetID) {
		return fmt.Errorf("service.TripService.RemoveMemberFromTrip: member: %w", domain.ErrNotFound)
	}

	trip.MemberIDs = withoutID(trip.MemberIDs, targetID)
	if err := s.store.SaveTrip(trip); err != nil {
		return fmt.Errorf("service.TripService.RemoveMemberFromTrip: %w", err)
	}
	return nil
}

// LeaveTrip removes userID from the trip's member list. Only non-admin
// members may leave: the sole admin has no leave or ownership-transfer
// path, so an admin attempt fails with domain.ErrUnauthorized.
func (s *TripService) LeaveTrip(tripID, userID uuid.UUID) error {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.LeaveTrip: %w", err)
	}
	if trip.IsAdmin(userID) {
		return fmt.Errorf("%w: the trip admin cannot leave their own trip", domain.ErrUnauthorized)
	}
	if !trip.IsMember(userID) {
		return fmt.Errorf("service.TripService.LeaveTrip: member: %w", domain.ErrNotFound)
	}

	trip.MemberIDs = withoutID(trip.MemberIDs, userID)
	if err := s.store.SaveTrip(trip); err != nil {
		return fmt.Errorf("service.TripService.LeaveTrip: %w", err)
	}
	return nil
}

// CanUserAccess reports whether userID may see the trip at all:
// membership is the single source of truth for trip access.
func (s *TripService) CanUserAccess(trip domain.Trip, userID uuid.UUID) bool {
	return trip.IsMember(userID)
}

// IsUserAdmin reports whether userID is the trip's sole admin.
func (s *TripService) IsUserAdmin(trip domain.Trip, userID uuid.UUID) bool {
	return trip.IsAdmin(userID)
}

// DeleteTrip removes a trip and cascades to all of its children.
func (s *TripService) DeleteTrip(id uuid.UUID) error {
	if err := s.store.DeleteTrip(id); err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	return nil
}

// withoutID returns a fresh slice with every occurrence of target removed.
// It must not compact in place: the input may alias a snapshot the caller
// still holds.
func withoutID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
