package engine

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/pkg/core/heuristics"
	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// TravelOracle answers travel-time queries in whole minutes for a pair of
// venue coordinates.
type TravelOracle interface {
	TravelMinutes(ctx context.Context, origin, destination venues.Coordinates) (int, error)
}

// Engine assigns a covering team to every fixture in a single sequential
// pass. The load counters create genuine cross-iteration data dependencies,
// so fixture processing must never be parallelised.
type Engine struct {
	fixtures []*model.Fixture
	teams    []string
	counters model.LoadCounters
	registry *venues.Registry
	oracle   TravelOracle
	selector heuristics.Selection
	logger   *zap.Logger
}

// Config collects the engine's collaborators. Counters may carry
// season-to-date tallies; a nil value starts every team at zero.
type Config struct {
	Fixtures []*model.Fixture
	Teams    []string
	Counters model.LoadCounters
	Registry *venues.Registry
	Oracle   TravelOracle
	Selector heuristics.Selection
	Logger   *zap.Logger
}

// New creates an assignment engine.
func New(cfg Config) *Engine {
	counters := cfg.Counters
	if counters == nil {
		counters = model.NewLoadCounters(cfg.Teams)
	} else {
		// Teams absent from the seed still need a zero entry.
		for _, team := range cfg.Teams {
			if _, ok := counters[team]; !ok {
				counters[team] = 0
			}
		}
	}

	return &Engine{
		fixtures: cfg.Fixtures,
		teams:    cfg.Teams,
		counters: counters,
		registry: cfg.Registry,
		oracle:   cfg.Oracle,
		selector: cfg.Selector,
		logger:   cfg.Logger,
	}
}

// AssignCoveringTeams runs the full assignment pass: fixtures grouped by
// calendar day, days in chronological order, each fixture assigned exactly
// once. Returns the first fatal error (an unresolvable travel time or an
// unknown venue), leaving later fixtures unassigned.
func (e *Engine) AssignCoveringTeams(ctx context.Context) error {
	groups := GroupByDate(e.fixtures)

	for _, group := range groups {
		e.logger.Info("Assigning fixtures",
			zap.String("date", group.Date.Format("2006-01-02")),
			zap.Int("fixtures", len(group.Fixtures)),
		)

		for _, fixture := range group.Fixtures {
			if err := e.assignFixture(ctx, fixture); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) assignFixture(ctx context.Context, fixture *model.Fixture) error {
	if fixture.UmpiresRequired == 0 {
		fixture.CoveringTeam = model.CoveredNoUmpireNeeded
		fixture.EligibleTeams = []string{}
		return nil
	}

	feasible, err := e.eligibleTeams(ctx, fixture)
	if err != nil {
		return err
	}

	// Recorded sorted for stable audit output.
	recorded := make([]string, len(feasible))
	copy(recorded, feasible)
	sort.Strings(recorded)
	fixture.EligibleTeams = recorded

	if len(feasible) == 0 {
		e.logger.Warn("No available umpire for fixture", zapFixture(fixture)...)
		fixture.CoveringTeam = model.NoAvailableUmpire
		return nil
	}

	selected := e.selector.Evaluate(feasible, e.counters)
	fixture.CoveringTeam = selected
	e.counters.Add(selected, fixture.UmpiresRequired)

	e.logger.Debug("Fixture assigned",
		append(zapFixture(fixture),
			zap.String("covering_team", selected),
			zap.Int("umpires", fixture.UmpiresRequired),
			zap.Int("team_load", e.counters[selected]),
		)...)

	return nil
}

// Fixtures returns the engine's fixture list, sorted and annotated once
// AssignCoveringTeams has run.
func (e *Engine) Fixtures() []*model.Fixture {
	return e.fixtures
}

// Counters returns the per-team umpiring load counters.
func (e *Engine) Counters() model.LoadCounters {
	return e.counters
}

// TotalUmpiresSupplied returns the number of umpiring slots covered in
// this run plus any seeded history.
func (e *Engine) TotalUmpiresSupplied() int {
	return e.counters.Total()
}

func zapFixture(fixture *model.Fixture) []zap.Field {
	return []zap.Field{
		zap.String("home", fixture.Home),
		zap.String("away", fixture.Away),
		zap.Time("start", fixture.StartTime),
		zap.String("location", fixture.Location),
	}
}

func zapTeamFixture(team string, fixture *model.Fixture) []zap.Field {
	return append(zapFixture(fixture), zap.String("team", team))
}
