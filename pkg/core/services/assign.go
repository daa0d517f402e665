package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/internal/config"
	"github.com/thecatthatbarks/buzzbot/pkg/core/engine"
	"github.com/thecatthatbarks/buzzbot/pkg/core/heuristics"
	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/db"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// TravelOracle is what the assignment service needs from the travel layer:
// per-pair lookups for the evaluator plus bulk precompute and diagnostics.
type TravelOracle interface {
	engine.TravelOracle
	Precompute(ctx context.Context, coords []venues.Coordinates) error
	RequestCount() int
}

// AssignOptions toggles the optional history integration.
type AssignOptions struct {
	// SeedHistory seeds load counters with season-to-date tallies
	SeedHistory bool

	// SaveRun persists the run and its records after assignment
	SaveRun bool
}

// AssignResult is the outcome of a full assignment run.
type AssignResult struct {
	RunID           string
	Fixtures        []*model.Fixture
	Counters        model.LoadCounters
	UmpiresSupplied int
	RemoteRequests  int
}

// AssignCoverage runs the full assignment flow: precompute the travel
// table for the match-day venues, run the engine over the fixture set, and
// optionally seed from / save to the assignment history store.
//
// The fixture list must already be validated; the engine never runs on a
// partially valid set.
func AssignCoverage(
	ctx context.Context,
	cfg *config.Config,
	all []*model.Fixture,
	registry *venues.Registry,
	oracle TravelOracle,
	store db.HistoryStore,
	logger *zap.Logger,
	opts AssignOptions,
) (*AssignResult, error) {
	selector, err := heuristics.ForName(cfg.Heuristic)
	if err != nil {
		return nil, err
	}

	coords, err := matchDayCoordinates(all, registry)
	if err != nil {
		return nil, err
	}
	if err := oracle.Precompute(ctx, coords); err != nil {
		return nil, fmt.Errorf("travel table precompute failed: %w", err)
	}

	var counters model.LoadCounters
	if opts.SeedHistory {
		if store == nil {
			return nil, fmt.Errorf("history seeding requested but no history store is configured")
		}
		seed, err := store.SeasonLoadCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load season umpiring counts: %w", err)
		}
		counters = model.LoadCounters(seed)
		logger.Info("Seeded load counters from assignment history", zap.Int("teams", len(seed)))
	}

	eng := engine.New(engine.Config{
		Fixtures: all,
		Teams:    cfg.Teams,
		Counters: counters,
		Registry: registry,
		Oracle:   oracle,
		Selector: selector,
		Logger:   logger,
	})

	if err := eng.AssignCoveringTeams(ctx); err != nil {
		return nil, err
	}

	// Sort chronologically for presentation and export.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartTime.Before(all[j].StartTime)
	})

	result := &AssignResult{
		RunID:           uuid.NewString(),
		Fixtures:        all,
		Counters:        eng.Counters(),
		UmpiresSupplied: eng.TotalUmpiresSupplied(),
		RemoteRequests:  oracle.RequestCount(),
	}

	if opts.SaveRun {
		if store == nil {
			return nil, fmt.Errorf("run saving requested but no history store is configured")
		}
		if err := saveRun(ctx, store, selector.Name(), result); err != nil {
			return nil, err
		}
		logger.Info("Assignment run saved", zap.String("run_id", result.RunID))
	}

	logger.Info("Assignment complete",
		zap.Int("fixtures", len(all)),
		zap.Int("umpires_supplied", result.UmpiresSupplied),
		zap.Int("remote_requests", result.RemoteRequests),
	)

	return result, nil
}

func matchDayCoordinates(all []*model.Fixture, registry *venues.Registry) ([]venues.Coordinates, error) {
	names := engine.MatchDayLocations(all)
	coords := make([]venues.Coordinates, 0, len(names))
	for _, name := range names {
		c, err := registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

func saveRun(ctx context.Context, store db.HistoryStore, heuristic string, result *AssignResult) error {
	run := &db.AssignmentRun{
		ID:              result.RunID,
		RanAt:           time.Now().UTC(),
		Heuristic:       heuristic,
		FixtureCount:    len(result.Fixtures),
		UmpiresSupplied: result.UmpiresSupplied,
	}

	records := make([]db.AssignmentRecord, 0, len(result.Fixtures))
	for _, fixture := range result.Fixtures {
		records = append(records, db.AssignmentRecord{
			ID:              uuid.NewString(),
			RunID:           run.ID,
			Home:            fixture.Home,
			Away:            fixture.Away,
			StartTime:       fixture.StartTime,
			Location:        fixture.Location,
			UmpiresRequired: fixture.UmpiresRequired,
			CoveringTeam:    fixture.CoveringTeam,
			EligibleTeams:   fixture.EligibleTeams,
		})
	}

	if err := store.InsertRun(ctx, run, records); err != nil {
		return fmt.Errorf("failed to save assignment run: %w", err)
	}

	return nil
}
