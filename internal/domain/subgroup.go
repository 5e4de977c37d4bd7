package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subgroup is a named subset of a trip's members with its own chat and
// itinerary stops. The first element of MemberIDs is treated as the
// subgroup admin by convention — there is no stored role.
//
// Subgroup membership is conceptually a subset of the owning trip's
// members, but that is not enforced at write time.
type Subgroup struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	ColorHex        string      `json:"color_hex"`
	TripID          uuid.UUID   `json:"trip_id"`
	MemberIDs       []uuid.UUID `json:"member_ids"`
	CreatedByUserID uuid.UUID   `json:"created_by_user_id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewSubgroup constructs a subgroup with a fresh id and the creator as
// first member (and therefore admin by convention).
func NewSubgroup(name, colorHex string, tripID, createdBy uuid.UUID) Subgroup {
	now := time.Now().UTC()
	return Subgroup{
		ID:              uuid.New(),
		Name:            name,
		ColorHex:        colorHex,
		TripID:          tripID,
		MemberIDs:       []uuid.UUID{createdBy},
		CreatedByUserID: createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Clone returns a copy whose MemberIDs slice shares no backing array with
// the receiver. Same contract as Trip.Clone.
func (g Subgroup) Clone() Subgroup {
	g.MemberIDs = append([]uuid.UUID(nil), g.MemberIDs...)
	return g
}

// AdminID returns the conventional subgroup admin: the first member.
// Returns uuid.Nil for an empty member list.
func (g Subgroup) AdminID() uuid.UUID {
	if len(g.MemberIDs) == 0 {
		return uuid.Nil
	}
	return g.MemberIDs[0]
}

// HasMember reports whether the user appears in MemberIDs.
func (g Subgroup) HasMember(userID uuid.UUID) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
