package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/testutil"
)

// TestSaveLocation_ReplacesByUserAndTrip verifies the (userID, tripID) key:
// a newer report replaces the old record instead of accumulating history.
func TestSaveLocation_ReplacesByUserAndTrip(t *testing.T) {
	st := testutil.NewStore(t)
	userID, tripID := uuid.New(), uuid.New()

	require.NoError(t, st.SaveLocation(domain.NewUserLocation(userID, tripID, 10, 20)))
	require.NoError(t, st.SaveLocation(domain.NewUserLocation(userID, tripID, 11, 21)))

	got, err := st.GetLocation(userID, tripID)
	require.NoError(t, err)
	assert.Equal(t, 11.0, got.Latitude)
	assert.Len(t, st.GetLocations(tripID), 1, "one record per user per trip")
}

func TestSaveLocation_SeparateTripsKeepSeparateRecords(t *testing.T) {
	st := testutil.NewStore(t)
	userID := uuid.New()
	tripA, tripB := uuid.New(), uuid.New()

	require.NoError(t, st.SaveLocation(domain.NewUserLocation(userID, tripA, 1, 1)))
	require.NoError(t, st.SaveLocation(domain.NewUserLocation(userID, tripB, 2, 2)))

	assert.Len(t, st.GetLocations(tripA), 1)
	assert.Len(t, st.GetLocations(tripB), 1)
}

// TestGetMessages_SeparatesGeneralAndSubgroupChats verifies the nil/non-nil
// subgroup selector: the general chat and each subgroup chat are disjoint.
func TestGetMessages_SeparatesGeneralAndSubgroupChats(t *testing.T) {
	st := testutil.NewStore(t)
	sender, tripID, groupID := uuid.New(), uuid.New(), uuid.New()

	general := domain.NewMessage("everyone", sender, tripID, nil)
	require.NoError(t, st.SaveMessage(general))
	scoped := domain.NewMessage("just us", sender, tripID, &groupID)
	require.NoError(t, st.SaveMessage(scoped))

	got := st.GetMessages(tripID, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "everyone", got[0].Content)

	got = st.GetMessages(tripID, &groupID)
	require.Len(t, got, 1)
	assert.Equal(t, "just us", got[0].Content)
}

func TestGetInvitations_FiltersBySubgroupAndStatus(t *testing.T) {
	st := testutil.NewStore(t)
	inviter, groupID := uuid.New(), uuid.New()
	alice, bob := uuid.New(), uuid.New()

	pending := domain.NewSubgroupInvitation(groupID, inviter, alice)
	require.NoError(t, st.SaveInvitation(pending))

	declined := domain.NewSubgroupInvitation(groupID, inviter, bob)
	declined.Status = domain.InvitationDeclined
	require.NoError(t, st.SaveInvitation(declined))

	otherGroup := domain.NewSubgroupInvitation(uuid.New(), inviter, alice)
	require.NoError(t, st.SaveInvitation(otherGroup))

	got := st.GetInvitations(groupID, domain.InvitationPending)

	require.Len(t, got, 1)
	assert.Equal(t, alice, got[0].InvitedUserID)
}

func TestDeletePendingTripInvitations_OnlyMatchingPair(t *testing.T) {
	st := testutil.NewStore(t)
	inviter, user, tripID := uuid.New(), uuid.New(), uuid.New()

	target := domain.NewTripInvitation(tripID, inviter, user)
	require.NoError(t, st.SaveInvitation(target))
	otherTrip := domain.NewTripInvitation(uuid.New(), inviter, user)
	require.NoError(t, st.SaveInvitation(otherTrip))

	st.DeletePendingTripInvitations(user, tripID)

	_, err := st.GetInvitation(target.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = st.GetInvitation(otherTrip.ID)
	assert.NoError(t, err)
}

func TestDeleteMemory_UnlinksFromTrip(t *testing.T) {
	st := testutil.NewStore(t)
	owner := uuid.New()
	trip := tripFixture(owner)
	require.NoError(t, st.SaveTrip(trip))

	mem := domain.NewMemory(trip.ID, nil, "notes", trip.StartDate)
	require.NoError(t, st.SaveMemory(mem))

	linked, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{mem.ID}, linked.MemoryIDs)

	require.NoError(t, st.DeleteMemory(mem.ID))

	unlinked, err := st.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Empty(t, unlinked.MemoryIDs)
	assert.Empty(t, st.GetMemories(trip.ID))
}
