package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/testutil"
)

func TestGetTripByInviteCode_CaseInsensitive(t *testing.T) {
	st := testutil.NewStore(t)
	trip := tripFixture(uuid.New())
	trip.InviteCode = "AbCd1234"
	require.NoError(t, st.SaveTrip(trip))

	got, err := st.GetTripByInviteCode("aBcD1234")

	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
}

func TestGetTripByInviteCode_Unknown(t *testing.T) {
	st := testutil.NewStore(t)

	_, err := st.GetTripByInviteCode("ZZZZZZZZ")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestGetTrip_ReturnsDetachedCopy pins the read contract: the ID slices on
// a returned trip share no memory with the store, so callers can append or
// compact freely without touching store state.
func TestGetTrip_ReturnsDetachedCopy(t *testing.T) {
	st := testutil.NewStore(t)
	owner := uuid.New()
	trip := tripFixture(owner)
	trip.MemberIDs = append(trip.MemberIDs, uuid.New())
	require.NoError(t, st.SaveTrip(trip))

	got, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	got.MemberIDs[0] = uuid.New()
	got.MemberIDs = got.MemberIDs[:1]

	reread, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.MemberIDs, reread.MemberIDs, "mutating a returned trip must not reach the store")
}

// TestSaveTrip_RollsBackOnWriteFailure forces the file write to fail by
// replacing trips.json with a directory, then verifies the in-memory
// insertion is undone: SaveTrip errors and the new trip is not visible.
func TestSaveTrip_RollsBackOnWriteFailure(t *testing.T) {
	st := testutil.NewStore(t)
	existing := tripFixture(uuid.New())
	require.NoError(t, st.SaveTrip(existing))

	path := filepath.Join(st.Dir(), "trips.json")
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	doomed := tripFixture(uuid.New())
	doomed.StartDate = time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	doomed.EndDate = time.Date(2027, 2, 5, 0, 0, 0, 0, time.UTC)
	err := st.SaveTrip(doomed)

	require.Error(t, err, "rename onto a directory must fail the write")
	_, err = st.GetTrip(doomed.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "failed save must not leave the trip in memory")
	got := st.GetAllTrips()
	require.Len(t, got, 1)
	assert.Equal(t, existing.ID, got[0].ID)
}

func TestGetUserAccessibleTrips_MembershipAndOrder(t *testing.T) {
	st := testutil.NewStore(t)
	member := uuid.New()
	outsider := uuid.New()

	later := tripFixture(member)
	later.StartDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	later.EndDate = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SaveTrip(later))

	earlier := tripFixture(member)
	earlier.StartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	earlier.EndDate = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SaveTrip(earlier))

	other := tripFixture(outsider)
	require.NoError(t, st.SaveTrip(other))

	got := st.GetUserAccessibleTrips(member)

	require.Len(t, got, 2, "only trips the user is a member of")
	assert.Equal(t, earlier.ID, got[0].ID, "sorted by start date ascending")
	assert.Equal(t, later.ID, got[1].ID)
}

// TestDeleteTrip_Cascades verifies the one multi-collection operation:
// deleting a trip removes its subgroups, stops, messages, locations, and
// invitations (both trip invitations and invitations to the trip's
// subgroups), and leaves unrelated trips untouched.
func TestDeleteTrip_Cascades(t *testing.T) {
	st := testutil.NewStore(t)
	owner := uuid.New()
	invitee := uuid.New()

	trip := tripFixture(owner)
	require.NoError(t, st.SaveTrip(trip))

	group := domain.NewSubgroup("Hikers", "#00FF00", trip.ID, owner)
	require.NoError(t, st.SaveSubgroup(group))

	stop := domain.NewItineraryStop("Trailhead", "Sintra", trip.StartDate, trip.StartDate, trip.ID, nil, owner, "")
	require.NoError(t, st.SaveItineraryStop(stop))

	require.NoError(t, st.SaveMessage(domain.NewMessage("hello", owner, trip.ID, nil)))
	require.NoError(t, st.SaveLocation(domain.NewUserLocation(owner, trip.ID, 1, 2)))
	require.NoError(t, st.SaveInvitation(domain.NewTripInvitation(trip.ID, owner, invitee)))
	require.NoError(t, st.SaveInvitation(domain.NewSubgroupInvitation(group.ID, owner, invitee)))

	// An unrelated trip that must survive the cascade.
	bystander := tripFixture(uuid.New())
	bystander.StartDate = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	bystander.EndDate = time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SaveTrip(bystander))
	require.NoError(t, st.SaveMessage(domain.NewMessage("still here", owner, bystander.ID, nil)))

	require.NoError(t, st.DeleteTrip(trip.ID))

	_, err := st.GetTrip(trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, st.GetSubgroups(trip.ID))
	assert.Empty(t, st.GetItineraryStops(trip.ID))
	assert.Empty(t, st.GetMessages(trip.ID, nil))
	assert.Empty(t, st.GetLocations(trip.ID))
	assert.Empty(t, st.GetPendingInvitations(invitee), "both invitations referenced the deleted trip")

	_, err = st.GetTrip(bystander.ID)
	assert.NoError(t, err)
	assert.Len(t, st.GetMessages(bystander.ID, nil), 1)
}

func TestDeleteTrip_Unknown(t *testing.T) {
	st := testutil.NewStore(t)

	err := st.DeleteTrip(uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDeleteSubgroup_UnlinksFromTrip verifies the two-way reference
// maintenance: the store is the only writer of Trip.SubgroupIDs, and it
// keeps the list in sync on both save and delete.
func TestDeleteSubgroup_UnlinksFromTrip(t *testing.T) {
	st := testutil.NewStore(t)
	owner := uuid.New()
	trip := tripFixture(owner)
	require.NoError(t, st.SaveTrip(trip))

	group := domain.NewSubgroup("Foodies", "#FF8800", trip.ID, owner)
	require.NoError(t, st.SaveSubgroup(group))

	linked, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{group.ID}, linked.SubgroupIDs)

	require.NoError(t, st.DeleteSubgroup(group.ID))

	unlinked, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Empty(t, unlinked.SubgroupIDs)
}

// TestDeleteSubgroup_SweepsItsInvitations verifies that deleting a subgroup
// directly removes invitations addressed to it, the same way the trip-delete
// cascade does, so no invitation can dangle on a subgroup that is gone.
func TestDeleteSubgroup_SweepsItsInvitations(t *testing.T) {
	st := testutil.NewStore(t)
	owner := uuid.New()
	invitee := uuid.New()
	trip := tripFixture(owner)
	require.NoError(t, st.SaveTrip(trip))

	group := domain.NewSubgroup("Climbers", "#2266FF", trip.ID, owner)
	require.NoError(t, st.SaveSubgroup(group))
	require.NoError(t, st.SaveInvitation(domain.NewSubgroupInvitation(group.ID, owner, invitee)))

	keeper := domain.NewSubgroup("Swimmers", "#22AAFF", trip.ID, owner)
	require.NoError(t, st.SaveSubgroup(keeper))
	kept := domain.NewSubgroupInvitation(keeper.ID, owner, invitee)
	require.NoError(t, st.SaveInvitation(kept))

	require.NoError(t, st.DeleteSubgroup(group.ID))

	pending := st.GetPendingInvitations(invitee)
	require.Len(t, pending, 1, "only the deleted subgroup's invitation is swept")
	assert.Equal(t, kept.ID, pending[0].ID)
}

func TestSaveItineraryStop_LinksOnceOnResave(t *testing.T) {
	st := testutil.NewStore(t)
	owner := uuid.New()
	trip := tripFixture(owner)
	require.NoError(t, st.SaveTrip(trip))

	stop := domain.NewItineraryStop("Museum", "Centro", trip.StartDate, trip.StartDate, trip.ID, nil, owner, "")
	require.NoError(t, st.SaveItineraryStop(stop))
	stop.Title = "Museum (updated)"
	require.NoError(t, st.SaveItineraryStop(stop))

	got, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{stop.ID}, got.ItineraryStopIDs, "resave must not duplicate the back-reference")
}
