package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
	"github.com/mwhelan/tripmate/internal/store"
)

// ItineraryService implements "My Itinerary" tagging and the per-view
// filtering and day-grouping rules for itinerary stops.
type ItineraryService struct {
	store *store.Store
}

// NewItineraryService constructs an ItineraryService backed by the store.
func NewItineraryService(st *store.Store) *ItineraryService {
	return &ItineraryService{store: st}
}

// ItineraryDay is one calendar day of filtered stops, ordered by
// time-of-day ascending. GroupStopsByDay returns days ascending.
type ItineraryDay struct {
	Day   time.Time
	Stops []domain.ItineraryStop
}

// AddToMyItinerary tags a stop into the user's personal itinerary,
// recording who added it. Tagging is independent of which subgroup owns
// the stop.
func (s *ItineraryService) AddToMyItinerary(stopID, userID uuid.UUID) error {
	stop, err := s.store.GetItineraryStop(stopID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.AddToMyItinerary: %w", err)
	}
	stop.IsInMyItinerary = true
	stop.AddedToMyItineraryByUserID = &userID
	if err := s.store.SaveItineraryStop(stop); err != nil {
		return fmt.Errorf("service.ItineraryService.AddToMyItinerary: %w", err)
	}
	return nil
}

// RemoveFromMyItinerary clears a stop's personal-itinerary tag — unless
// the stop was created directly inside the "My" pseudo-subgroup by this
// same user, in which case the stop is hard-deleted instead: a private
// stop with no other subgroup may not linger untagged once its creator
// disowns it.
func (s *ItineraryService) RemoveFromMyItinerary(stopID, userID uuid.UUID) error {
	stop, err := s.store.GetItineraryStop(stopID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveFromMyItinerary: %w", err)
	}

	if stop.IsCreatedInMySubgroup && stop.CreatedByUserID == userID {
		if err := s.store.DeleteItineraryStop(stop.ID); err != nil {
			return fmt.Errorf("service.ItineraryService.RemoveFromMyItinerary: %w", err)
		}
		return nil
	}

	stop.IsInMyItinerary = false
	stop.AddedToMyItineraryByUserID = nil
	if err := s.store.SaveItineraryStop(stop); err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveFromMyItinerary: %w", err)
	}
	return nil
}

// StopsForAll returns a trip's shared itinerary: every stop except those
// created privately under a "My" pseudo-subgroup, which never leak into
// the shared view.
func (s *ItineraryService) StopsForAll(tripID uuid.UUID) []domain.ItineraryStop {
	var out []domain.ItineraryStop
	for _, stop := range s.store.GetItineraryStops(tripID) {
		if stop.IsCreatedInMySubgroup {
			continue
		}
		out = append(out, stop)
	}
	return out
}

// StopsForMy returns the user's personal itinerary: stops the user tagged
// in, plus private stops the user created under "My".
func (s *ItineraryService) StopsForMy(tripID, userID uuid.UUID) []domain.ItineraryStop {
	var out []domain.ItineraryStop
	for _, stop := range s.store.GetItineraryStops(tripID) {
		tagged := stop.IsInMyItinerary &&
			stop.AddedToMyItineraryByUserID != nil && *stop.AddedToMyItineraryByUserID == userID
		private := stop.IsCreatedInMySubgroup && stop.CreatedByUserID == userID
		if tagged || private {
			out = append(out, stop)
		}
	}
	return out
}

// StopsForSubgroup returns a specific subgroup's stops with no additional
// filtering.
func (s *ItineraryService) StopsForSubgroup(tripID, subgroupID uuid.UUID) []domain.ItineraryStop {
	var out []domain.ItineraryStop
	for _, stop := range s.store.GetItineraryStops(tripID) {
		if stop.SubgroupID != nil && *stop.SubgroupID == subgroupID {
			out = append(out, stop)
		}
	}
	return out
}

// GroupStopsByDay buckets stops by calendar day (date component only,
// time-of-day ignored), days ascending, and within each day by
// time-of-day ascending.
func GroupStopsByDay(stops []domain.ItineraryStop) []ItineraryDay {
	byDay := map[time.Time][]domain.ItineraryStop{}
	for _, stop := range stops {
		y, m, d := stop.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		byDay[day] = append(byDay[day], stop)
	}

	days := make([]ItineraryDay, 0, len(byDay))
	for day, dayStops := range byDay {
		sort.Slice(dayStops, func(i, j int) bool {
			return timeOfDay(dayStops[i].Time) < timeOfDay(dayStops[j].Time)
		})
		days = append(days, ItineraryDay{Day: day, Stops: dayStops})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	return days
}

// timeOfDay reduces a timestamp to seconds since its own midnight, so
// stops sort by clock time regardless of which date the Time field holds.
func timeOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
