package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/internal/service"
	"github.com/mwhelan/tripmate/internal/store"
	"github.com/mwhelan/tripmate/testutil"
)

func newItineraryService(t *testing.T) (*service.ItineraryService, *store.Store) {
	t.Helper()
	st := testutil.NewStore(t)
	return service.NewItineraryService(st), st
}

// seedTrip saves a trip and returns it, for stop tests that only need an
// owning trip id.
func seedTrip(t *testing.T, st *store.Store, owner uuid.UUID) domain.Trip {
	t.Helper()
	trip := domain.NewTrip("Tokyo", "Japan", day(2026, 10, 29), day(2026, 11, 5), owner)
	require.NoError(t, st.SaveTrip(trip))
	return trip
}

func at(d time.Time, hour, min int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
}

// ---- tagging ---------------------------------------------------------------

func TestAddToMyItinerary_TagsAndRecordsUser(t *testing.T) {
	svc, st := newItineraryService(t)
	owner := uuid.New()
	trip := seedTrip(t, st, owner)

	stop := domain.NewItineraryStop("Market", "Tsukiji", trip.StartDate, at(trip.StartDate, 9, 0), trip.ID, nil, owner, "")
	require.NoError(t, st.SaveItineraryStop(stop))

	require.NoError(t, svc.AddToMyItinerary(stop.ID, owner))

	got, err := st.GetItineraryStop(stop.ID)
	require.NoError(t, err)
	assert.True(t, got.IsInMyItinerary)
	require.NotNil(t, got.AddedToMyItineraryByUserID)
	assert.Equal(t, owner, *got.AddedToMyItineraryByUserID)
}

// TestRemoveFromMyItinerary_UntagsSharedStop verifies the ordinary path: a
// stop that lives in a real subgroup (or "All") is merely untagged and
// survives.
func TestRemoveFromMyItinerary_UntagsSharedStop(t *testing.T) {
	svc, st := newItineraryService(t)
	owner := uuid.New()
	trip := seedTrip(t, st, owner)

	stop := domain.NewItineraryStop("Market", "Tsukiji", trip.StartDate, at(trip.StartDate, 9, 0), trip.ID, nil, owner, "")
	require.NoError(t, st.SaveItineraryStop(stop))
	require.NoError(t, svc.AddToMyItinerary(stop.ID, owner))

	require.NoError(t, svc.RemoveFromMyItinerary(stop.ID, owner))

	got, err := st.GetItineraryStop(stop.ID)
	require.NoError(t, err, "shared stop survives untagging")
	assert.False(t, got.IsInMyItinerary)
	assert.Nil(t, got.AddedToMyItineraryByUserID)
}

// TestRemoveFromMyItinerary_HardDeletesPrivateStop verifies the special
// case: a stop created directly under "My" by the same user is deleted
// outright when its creator disowns it.
func TestRemoveFromMyItinerary_HardDeletesPrivateStop(t *testing.T) {
	svc, st := newItineraryService(t)
	owner := uuid.New()
	trip := seedTrip(t, st, owner)

	stop := domain.NewItineraryStop("Secret café", "Shimokita", trip.StartDate, at(trip.StartDate, 15, 0), trip.ID, nil, owner, "")
	stop.IsCreatedInMySubgroup = true
	stop.IsInMyItinerary = true
	stop.AddedToMyItineraryByUserID = &owner
	require.NoError(t, st.SaveItineraryStop(stop))

	require.NoError(t, svc.RemoveFromMyItinerary(stop.ID, owner))

	_, err := st.GetItineraryStop(stop.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "private stop is hard-deleted")
}

// TestRemoveFromMyItinerary_OtherUsersUntagOnly: the hard delete applies
// only to the creator; anyone else untagging a private stop leaves it.
func TestRemoveFromMyItinerary_OtherUsersUntagOnly(t *testing.T) {
	svc, st := newItineraryService(t)
	creator, other := uuid.New(), uuid.New()
	trip := seedTrip(t, st, creator)

	stop := domain.NewItineraryStop("Secret café", "Shimokita", trip.StartDate, at(trip.StartDate, 15, 0), trip.ID, nil, creator, "")
	stop.IsCreatedInMySubgroup = true
	stop.IsInMyItinerary = true
	stop.AddedToMyItineraryByUserID = &other
	require.NoError(t, st.SaveItineraryStop(stop))

	require.NoError(t, svc.RemoveFromMyItinerary(stop.ID, other))

	got, err := st.GetItineraryStop(stop.ID)
	require.NoError(t, err, "only the creator's removal hard-deletes")
	assert.False(t, got.IsInMyItinerary)
}

// ---- filtering -------------------------------------------------------------

func TestStopsFiltering(t *testing.T) {
	svc, st := newItineraryService(t)
	me, other := uuid.New(), uuid.New()
	trip := seedTrip(t, st, me)
	group := domain.NewSubgroup("Foodies", "#FF8800", trip.ID, me)
	require.NoError(t, st.SaveSubgroup(group))

	shared := domain.NewItineraryStop("Shared", "A", trip.StartDate, at(trip.StartDate, 9, 0), trip.ID, nil, other, "")
	require.NoError(t, st.SaveItineraryStop(shared))

	inGroup := domain.NewItineraryStop("Group dinner", "B", trip.StartDate, at(trip.StartDate, 19, 0), trip.ID, &group.ID, other, "")
	require.NoError(t, st.SaveItineraryStop(inGroup))

	myPrivate := domain.NewItineraryStop("Private", "C", trip.StartDate, at(trip.StartDate, 12, 0), trip.ID, nil, me, "")
	myPrivate.IsCreatedInMySubgroup = true
	require.NoError(t, st.SaveItineraryStop(myPrivate))

	tagged := domain.NewItineraryStop("Tagged", "D", trip.StartDate, at(trip.StartDate, 10, 0), trip.ID, &group.ID, other, "")
	tagged.IsInMyItinerary = true
	tagged.AddedToMyItineraryByUserID = &me
	require.NoError(t, st.SaveItineraryStop(tagged))

	t.Run("All excludes private stops", func(t *testing.T) {
		titles := titlesOf(svc.StopsForAll(trip.ID))
		assert.ElementsMatch(t, []string{"Shared", "Group dinner", "Tagged"}, titles)
	})

	t.Run("My is tagged-by-me plus created-private-by-me", func(t *testing.T) {
		titles := titlesOf(svc.StopsForMy(trip.ID, me))
		assert.ElementsMatch(t, []string{"Private", "Tagged"}, titles)
	})

	t.Run("My for another user is empty", func(t *testing.T) {
		assert.Empty(t, svc.StopsForMy(trip.ID, other))
	})

	t.Run("Subgroup view has no extra filtering", func(t *testing.T) {
		titles := titlesOf(svc.StopsForSubgroup(trip.ID, group.ID))
		assert.ElementsMatch(t, []string{"Group dinner", "Tagged"}, titles)
	})
}

func titlesOf(stops []domain.ItineraryStop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.Title
	}
	return out
}

// ---- grouping --------------------------------------------------------------

// TestGroupStopsByDay verifies bucketing by date component, day order
// ascending, and time-of-day order within a day.
func TestGroupStopsByDay(t *testing.T) {
	tripID, user := uuid.New(), uuid.New()
	d1 := day(2026, 11, 1)
	d2 := day(2026, 11, 2)

	lateD1 := domain.NewItineraryStop("Dinner", "", d1, at(d1, 20, 0), tripID, nil, user, "")
	earlyD1 := domain.NewItineraryStop("Breakfast", "", d1, at(d1, 8, 0), tripID, nil, user, "")
	onD2 := domain.NewItineraryStop("Museum", "", d2, at(d2, 11, 0), tripID, nil, user, "")

	days := service.GroupStopsByDay([]domain.ItineraryStop{onD2, lateD1, earlyD1})

	require.Len(t, days, 2)
	assert.Equal(t, d1, days[0].Day)
	assert.Equal(t, []string{"Breakfast", "Dinner"}, titlesOf(days[0].Stops))
	assert.Equal(t, d2, days[1].Day)
	assert.Equal(t, []string{"Museum"}, titlesOf(days[1].Stops))
}

func TestGroupStopsByDay_IgnoresTimeOfDayInDateField(t *testing.T) {
	tripID, user := uuid.New(), uuid.New()
	d := day(2026, 11, 1)

	// Date field carries a stray time component; both stops share the day.
	a := domain.NewItineraryStop("A", "", at(d, 23, 0), at(d, 9, 0), tripID, nil, user, "")
	b := domain.NewItineraryStop("B", "", at(d, 1, 0), at(d, 10, 0), tripID, nil, user, "")

	days := service.GroupStopsByDay([]domain.ItineraryStop{a, b})

	require.Len(t, days, 1)
	assert.Equal(t, []string{"A", "B"}, titlesOf(days[0].Stops))
}
