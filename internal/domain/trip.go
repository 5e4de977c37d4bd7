// Package domain contains the core data types for the trip-coordination
// application. This package has zero dependencies on the store or service
// layers and is imported by every other internal package.
package domain

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

// TripStatus classifies a trip relative to "now" at the moment it was
// created. The value is computed once by NewTrip and then frozen — it does
// not auto-transition as time passes. Callers that need a live value should
// recompute from the stored dates with ComputeTripStatus.
type TripStatus string

const (
	TripStatusCurrent  TripStatus = "current"
	TripStatusUpcoming TripStatus = "upcoming"
	TripStatusPast     TripStatus = "past"
)

// Trip is the top-level aggregate: subgroups, itinerary stops, messages,
// locations, invitations, and memories all hang off a trip.
//
// MemberIDs is the single source of truth for trip access; the creator is
// always its first element. The creator is also the trip's sole admin —
// admin is computed from CreatedByUserID, never stored as a role.
//
// SubgroupIDs, ItineraryStopIDs, and MemoryIDs are denormalized
// back-references maintained exclusively by the store when the child
// entity is written or deleted.
type Trip struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Location         string      `json:"location"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	InviteCode       string      `json:"invite_code"`
	CreatedByUserID  uuid.UUID   `json:"created_by_user_id"`
	MemberIDs        []uuid.UUID `json:"member_ids"`
	Status           TripStatus  `json:"status"`
	SubgroupIDs      []uuid.UUID `json:"subgroup_ids"`
	ItineraryStopIDs []uuid.UUID `json:"itinerary_stop_ids"`
	MemoryIDs        []uuid.UUID `json:"memory_ids"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// NewTrip constructs a trip with a fresh id, a random invite code, the
// creator as first member, and a status frozen from the current time.
func NewTrip(name, location string, start, end time.Time, createdBy uuid.UUID) Trip {
	now := time.Now().UTC()
	return Trip{
		ID:              uuid.New(),
		Name:            name,
		Location:        location,
		StartDate:       start,
		EndDate:         end,
		InviteCode:      NewInviteCode(),
		CreatedByUserID: createdBy,
		MemberIDs:       []uuid.UUID{createdBy},
		Status:          ComputeTripStatus(now, start, end),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ComputeTripStatus classifies a date range relative to now.
// A trip is current when now falls inside [start, end] (inclusive),
// upcoming when it has not started, and past when it has ended.
func ComputeTripStatus(now, start, end time.Time) TripStatus {
	switch {
	case now.Before(start):
		return TripStatusUpcoming
	case now.After(end):
		return TripStatusPast
	default:
		return TripStatusCurrent
	}
}

// Clone returns a copy whose ID slices share no backing arrays with the
// receiver. The store hands out and accepts trips through Clone so that a
// caller appending to or compacting a member list can never reach the
// store's in-memory state behind its lock.
func (t Trip) Clone() Trip {
	t.MemberIDs = append([]uuid.UUID(nil), t.MemberIDs...)
	t.SubgroupIDs = append([]uuid.UUID(nil), t.SubgroupIDs...)
	t.ItineraryStopIDs = append([]uuid.UUID(nil), t.ItineraryStopIDs...)
	t.MemoryIDs = append([]uuid.UUID(nil), t.MemoryIDs...)
	return t
}

// Overlaps reports whether [start, end] intersects this trip's date range.
// Bounds are inclusive on both sides: trips that share a single day overlap.
func (t Trip) Overlaps(start, end time.Time) bool {
	return !start.After(t.EndDate) && !end.Before(t.StartDate)
}

// IsMember reports whether the user appears in MemberIDs.
func (t Trip) IsMember(userID uuid.UUID) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user is the trip's sole admin (its creator).
func (t Trip) IsAdmin(userID uuid.UUID) bool {
	return t.CreatedByUserID == userID
}

// inviteCodeAlphabet deliberately contains both cases and digits; invite
// code lookups are case-insensitive, so the mixed case is cosmetic only.
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewInviteCode returns an 8-character random alphanumeric code.
// Uniqueness across trips is probabilistic, not checked at creation.
func NewInviteCode() string {
	buf := make([]byte, 8)
	// rand.Read on crypto/rand never fails on supported platforms.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf)
}
