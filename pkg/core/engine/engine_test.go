package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/pkg/core/heuristics"
	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

var testVenues = map[string]venues.Coordinates{
	"Peffermill": {Lat: 55.929, Lng: -3.151},
	"Titwood":    {Lat: 55.829, Lng: -4.295},
	"Goldenacre": {Lat: 55.972, Lng: -3.203},
}

// stubOracle serves symmetric travel times from a fixed table.
type stubOracle struct {
	minutes map[[2]venues.Coordinates]int
}

func (s *stubOracle) TravelMinutes(ctx context.Context, origin, destination venues.Coordinates) (int, error) {
	if origin == destination {
		return 0, nil
	}
	if m, ok := s.minutes[[2]venues.Coordinates{origin, destination}]; ok {
		return m, nil
	}
	if m, ok := s.minutes[[2]venues.Coordinates{destination, origin}]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("travel time not found for %v -> %v", origin, destination)
}

func travelTable(minutes int) *stubOracle {
	table := make(map[[2]venues.Coordinates]int)
	names := []string{"Peffermill", "Titwood", "Goldenacre"}
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			table[[2]venues.Coordinates{testVenues[names[i]], testVenues[names[j]]}] = minutes
		}
	}
	return &stubOracle{minutes: table}
}

func newTestEngine(t *testing.T, fixtures []*model.Fixture, teams []string, oracle TravelOracle) *Engine {
	t.Helper()
	return New(Config{
		Fixtures: fixtures,
		Teams:    teams,
		Registry: venues.NewRegistry(testVenues),
		Oracle:   oracle,
		Selector: heuristics.NewGreedyFair(),
		Logger:   zap.NewNop(),
	})
}

func fixtureAt(t *testing.T, home, away string, day time.Time, hour, minute, umpires int, location string) *model.Fixture {
	t.Helper()
	f, err := model.NewFixture(home, away, day.Add(time.Duration(hour)*time.Hour+time.Duration(minute)*time.Minute), umpires, location)
	require.NoError(t, err)
	return f
}

var matchDay = time.Date(2024, 2, 24, 0, 0, 0, 0, time.UTC)

func TestAssign_ZeroUmpireFixturesNeverTouchCounters(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 12, 0, 0, "Peffermill"),
	}
	eng := newTestEngine(t, fixtures, []string{"1s", "2s", "3s"}, travelTable(30))

	require.NoError(t, eng.AssignCoveringTeams(context.Background()))

	assert.Equal(t, model.CoveredNoUmpireNeeded, fixtures[0].CoveringTeam)
	assert.Empty(t, fixtures[0].EligibleTeams)
	assert.Equal(t, 0, eng.TotalUmpiresSupplied())
}

func TestAssign_NoFeasibleTeamSentinel(t *testing.T) {
	// Both roster teams are playing in the fixture itself.
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "2s", matchDay, 12, 0, 1, "Peffermill"),
	}
	eng := newTestEngine(t, fixtures, []string{"1s", "2s"}, travelTable(30))

	require.NoError(t, eng.AssignCoveringTeams(context.Background()))

	assert.Equal(t, model.NoAvailableUmpire, fixtures[0].CoveringTeam)
	assert.Empty(t, fixtures[0].EligibleTeams)
	assert.Equal(t, 0, eng.TotalUmpiresSupplied())
}

func TestAssign_RecordsSortedEligibleTeams(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "3s", "Wildcats", matchDay, 12, 0, 1, "Peffermill"),
	}
	eng := newTestEngine(t, fixtures, []string{"7s", "3s", "1s", "4s"}, travelTable(30))

	require.NoError(t, eng.AssignCoveringTeams(context.Background()))

	assert.Equal(t, []string{"1s", "4s", "7s"}, fixtures[0].EligibleTeams)
	assert.Equal(t, "1s", fixtures[0].CoveringTeam)
}

func TestAssign_EndToEndSingleDay(t *testing.T) {
	// Three non-overlapping fixtures at the same venue, seven roster teams,
	// one roster team playing per fixture and one umpire needed each.
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 10, 0, 1, "Peffermill"),
		fixtureAt(t, "2s", "Reivers", matchDay, 12, 0, 1, "Peffermill"),
		fixtureAt(t, "3s", "Peebles", matchDay, 14, 0, 1, "Peffermill"),
	}
	teams := []string{"1s", "2s", "3s", "4s", "5s", "6s", "7s"}
	eng := newTestEngine(t, fixtures, teams, travelTable(30))

	require.NoError(t, eng.AssignCoveringTeams(context.Background()))

	// Each winner is the lexicographically first team at the lowest load:
	// 2s covers the first fixture, pushing its count up, and so on.
	assert.Equal(t, "2s", fixtures[0].CoveringTeam)
	assert.Equal(t, "1s", fixtures[1].CoveringTeam)
	assert.Equal(t, "4s", fixtures[2].CoveringTeam)

	counters := eng.Counters()
	assert.Equal(t, 1, counters["1s"])
	assert.Equal(t, 1, counters["2s"])
	assert.Equal(t, 1, counters["4s"])
	assert.Equal(t, 3, eng.TotalUmpiresSupplied())
}

func TestAssign_CountersPersistAcrossDays(t *testing.T) {
	day2 := matchDay.AddDate(0, 0, 7)
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 12, 0, 2, "Peffermill"),
		fixtureAt(t, "1s", "Reivers", day2, 12, 0, 1, "Peffermill"),
	}
	eng := newTestEngine(t, fixtures, []string{"1s", "2s", "3s"}, travelTable(30))

	require.NoError(t, eng.AssignCoveringTeams(context.Background()))

	// Day one gives 2s a load of 2, so day two goes to 3s.
	assert.Equal(t, "2s", fixtures[0].CoveringTeam)
	assert.Equal(t, "3s", fixtures[1].CoveringTeam)
	assert.Equal(t, 3, eng.TotalUmpiresSupplied())
}

func TestAssign_SeededCountersBiasSelection(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 12, 0, 1, "Peffermill"),
	}
	eng := New(Config{
		Fixtures: fixtures,
		Teams:    []string{"1s", "2s", "3s"},
		Counters: model.LoadCounters{"2s": 4},
		Registry: venues.NewRegistry(testVenues),
		Oracle:   travelTable(30),
		Selector: heuristics.NewGreedyFair(),
		Logger:   zap.NewNop(),
	})

	require.NoError(t, eng.AssignCoveringTeams(context.Background()))

	assert.Equal(t, "3s", fixtures[0].CoveringTeam)
}

func TestAssign_UnknownVenueAbortsRun(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 10, 0, 1, "Peffermill"),
		fixtureAt(t, "2s", "Reivers", matchDay, 13, 0, 1, "Murrayfield"),
	}
	eng := newTestEngine(t, fixtures, []string{"1s", "2s", "3s"}, travelTable(30))

	err := eng.AssignCoveringTeams(context.Background())
	require.Error(t, err)

	var unknownErr *venues.UnknownVenueError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestAssign_TravelLookupFailureAbortsRun(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 10, 0, 1, "Peffermill"),
		fixtureAt(t, "2s", "Reivers", matchDay, 13, 0, 1, "Titwood"),
	}
	// Empty table: any cross-venue lookup fails.
	eng := newTestEngine(t, fixtures, []string{"1s", "2s", "3s"}, &stubOracle{})

	err := eng.AssignCoveringTeams(context.Background())
	assert.ErrorContains(t, err, "travel time not found")
}

func TestGroupByDate_StableWithinDay(t *testing.T) {
	day2 := matchDay.AddDate(0, 0, 1)
	f1 := fixtureAt(t, "1s", "Wildcats", day2, 14, 0, 1, "Peffermill")
	f2 := fixtureAt(t, "2s", "Reivers", matchDay, 12, 0, 1, "Peffermill")
	f3 := fixtureAt(t, "3s", "Peebles", day2, 10, 0, 1, "Peffermill")

	groups := GroupByDate([]*model.Fixture{f1, f2, f3})

	require.Len(t, groups, 2)
	assert.Equal(t, matchDay, groups[0].Date)
	assert.Equal(t, []*model.Fixture{f2}, groups[0].Fixtures)
	// Input order preserved within the day, not re-sorted by kick-off time.
	assert.Equal(t, []*model.Fixture{f1, f3}, groups[1].Fixtures)
}

func TestMatchDayLocations(t *testing.T) {
	fixtures := []*model.Fixture{
		fixtureAt(t, "1s", "Wildcats", matchDay, 10, 0, 1, "Peffermill"),
		fixtureAt(t, "2s", "Reivers", matchDay, 12, 0, 1, "Titwood"),
		fixtureAt(t, "3s", "Peebles", matchDay, 14, 0, 1, "Peffermill"),
	}
	assert.Equal(t, []string{"Peffermill", "Titwood"}, MatchDayLocations(fixtures))
}
