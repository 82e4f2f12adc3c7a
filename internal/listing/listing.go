// Package listing turns stored venues, artists and shows into the read-side
// views served by the listing pages.  Every function takes the evaluation
// instant explicitly so counts are always computed against the caller's
// clock and never stored.
package listing

import (
	"sort"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// StartTimeLayout is the format used for start_time in every view.
const StartTimeLayout = "2006-01-02 15:04:05"

// FormatStartTime renders t in UTC using StartTimeLayout.
func FormatStartTime(t time.Time) string {
	return t.UTC().Format(StartTimeLayout)
}

// IsUpcoming reports whether a show starting at start is strictly after now.
func IsUpcoming(start, now time.Time) bool { return start.After(now) }

// IsPast reports whether a show starting at start is strictly before now.
// A show starting exactly at now is neither past nor upcoming.
func IsPast(start, now time.Time) bool { return start.Before(now) }

// CountUpcoming returns the number of shows strictly after now.
func CountUpcoming(shows []model.Show, now time.Time) int {
	n := 0
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			n++
		}
	}
	return n
}

// VenueSummary is a venue entry inside a location group or search result.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area is one (city, state) group on the venue listing page.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

type areaKey struct {
	city, state string
}

// GroupVenuesByLocation partitions venues by their exact (city, state) pair.
// Each venue must carry its shows.  Groups are ordered by state, then city;
// venues keep their input order within a group.
func GroupVenuesByLocation(venues []model.Venue, now time.Time) []Area {
	index := make(map[areaKey]int)
	areas := make([]Area, 0)
	for _, v := range venues {
		k := areaKey{city: v.City, state: v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []VenueSummary{}})
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: CountUpcoming(v.Shows, now),
		})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].State != areas[j].State {
			return areas[i].State < areas[j].State
		}
		return areas[i].City < areas[j].City
	})
	return areas
}

// Partition splits items into past and upcoming buckets relative to now,
// preserving input order.  Items starting exactly at now are dropped.
func Partition[T any](items []T, start func(T) time.Time, now time.Time) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, it := range items {
		t := start(it)
		switch {
		case IsPast(t, now):
			past = append(past, it)
		case IsUpcoming(t, now):
			upcoming = append(upcoming, it)
		}
	}
	return past, upcoming
}

// PartitionShows splits shows into past and upcoming relative to now.
func PartitionShows(shows []model.Show, now time.Time) (past, upcoming []model.Show) {
	return Partition(shows, func(s model.Show) time.Time { return s.StartTime }, now)
}
