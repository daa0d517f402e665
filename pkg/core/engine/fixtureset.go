package engine

import (
	"sort"
	"time"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

// DayGroup holds the fixtures falling on one calendar day.
type DayGroup struct {
	Date     time.Time
	Fixtures []*model.Fixture
}

// GroupByDate stable-sorts the fixtures by calendar date of their start
// time and groups contiguous runs. The sort is stable so fixtures keep
// their input order within a day; the engine processes them in that order
// and the assignment outcome depends on it.
func GroupByDate(fixtures []*model.Fixture) []DayGroup {
	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].Date().Before(fixtures[j].Date())
	})

	var groups []DayGroup
	for _, fixture := range fixtures {
		date := fixture.Date()
		if len(groups) == 0 || !groups[len(groups)-1].Date.Equal(date) {
			groups = append(groups, DayGroup{Date: date})
		}
		last := &groups[len(groups)-1]
		last.Fixtures = append(last.Fixtures, fixture)
	}

	return groups
}

// MatchDayLocations returns the distinct venue names used across the
// fixtures, in first-seen order. Used to scope the travel-table precompute
// to match-day venues only.
func MatchDayLocations(fixtures []*model.Fixture) []string {
	seen := make(map[string]bool)
	var names []string
	for _, fixture := range fixtures {
		if !seen[fixture.Location] {
			seen[fixture.Location] = true
			names = append(names, fixture.Location)
		}
	}
	return names
}
