package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus is the invitation lifecycle state. Transitions are
// one-way: pending → accepted or pending → declined, never back.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// InvitationType distinguishes the two invitation flavors that share
// this struct.
type InvitationType string

const (
	InvitationTypeTrip     InvitationType = "trip"
	InvitationTypeSubgroup InvitationType = "subgroup"
)

// Invitation asks one user to join a trip or a subgroup. Exactly one of
// TripID/SubgroupID is relevant depending on Type; the other stays nil.
type Invitation struct {
	ID              uuid.UUID        `json:"id"`
	Type            InvitationType   `json:"type"`
	TripID          *uuid.UUID       `json:"trip_id,omitempty"`
	SubgroupID      *uuid.UUID       `json:"subgroup_id,omitempty"`
	InvitedByUserID uuid.UUID        `json:"invited_by_user_id"`
	InvitedUserID   uuid.UUID        `json:"invited_user_id"`
	Status          InvitationStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewTripInvitation constructs a pending invitation to a trip.
func NewTripInvitation(tripID, invitedBy, invited uuid.UUID) Invitation {
	return Invitation{
		ID:              uuid.New(),
		Type:            InvitationTypeTrip,
		TripID:          &tripID,
		InvitedByUserID: invitedBy,
		InvitedUserID:   invited,
		Status:          InvitationPending,
		CreatedAt:       time.Now().UTC(),
	}
}

// NewSubgroupInvitation constructs a pending invitation to a subgroup.
func NewSubgroupInvitation(subgroupID, invitedBy, invited uuid.UUID) Invitation {
	return Invitation{
		ID:              uuid.New(),
		Type:            InvitationTypeSubgroup,
		SubgroupID:      &subgroupID,
		InvitedByUserID: invitedBy,
		InvitedUserID:   invited,
		Status:          InvitationPending,
		CreatedAt:       time.Now().UTC(),
	}
}
