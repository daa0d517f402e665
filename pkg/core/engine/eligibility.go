package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

// isEligible decides whether a team can umpire the given fixture. Three
// short-circuiting checks run in order, cheapest first:
//
//  1. Identity: the team cannot umpire a match it is playing in.
//  2. Overlap: the team cannot be playing another match whose time interval
//     overlaps the fixture's.
//  3. Travel: for every non-overlapping match the team plays, there must be
//     enough time to travel between the venues in at least one direction.
//
// Travel-time lookup failures propagate as errors; guessing a travel time
// would silently corrupt the eligibility decision.
func (e *Engine) isEligible(ctx context.Context, team string, fixture *model.Fixture) (bool, error) {
	if fixture.Involves(team) {
		e.logger.Debug("Not eligible - team is playing in the fixture",
			zapTeamFixture(team, fixture)...)
		return false, nil
	}

	for _, other := range e.fixtures {
		if other == fixture || !other.Involves(team) {
			continue
		}
		if fixture.OverlapsWith(other) {
			e.logger.Debug("Not eligible - team plays an overlapping fixture",
				zapTeamFixture(team, fixture)...)
			return false, nil
		}
	}

	destination, err := e.registry.Lookup(fixture.Location)
	if err != nil {
		return false, err
	}

	for _, other := range e.fixtures {
		if other == fixture || !other.Involves(team) {
			continue
		}

		origin, err := e.registry.Lookup(other.Location)
		if err != nil {
			return false, err
		}

		travelMinutes, err := e.oracle.TravelMinutes(ctx, origin, destination)
		if err != nil {
			return false, fmt.Errorf("eligibility check for %q umpiring %s v %s: %w",
				team, fixture.Home, fixture.Away, err)
		}

		// bufferAfter: the team's own match ends, then it travels to umpire.
		// bufferBefore: the team umpires, then travels to its own later match.
		// Failing both directions for the same pair disqualifies the team.
		bufferAfter := fixture.StartTime.Sub(other.EndTime).Minutes() - float64(travelMinutes)
		bufferBefore := other.StartTime.Sub(fixture.EndTime).Minutes() - float64(travelMinutes)

		if bufferAfter < 0 && bufferBefore < 0 {
			e.logger.Debug("Not eligible - cannot travel between venues in time",
				append(zapTeamFixture(team, fixture),
					zap.Float64("buffer_after_minutes", bufferAfter),
					zap.Float64("buffer_before_minutes", bufferBefore),
				)...)
			return false, nil
		}
	}

	return true, nil
}

// eligibleTeams evaluates every roster team uniformly against the fixture
// and returns the feasible subset in roster order.
func (e *Engine) eligibleTeams(ctx context.Context, fixture *model.Fixture) ([]string, error) {
	var eligible []string
	for _, team := range e.teams {
		ok, err := e.isEligible(ctx, team, fixture)
		if err != nil {
			return nil, err
		}
		if ok {
			eligible = append(eligible, team)
		}
	}
	return eligible, nil
}
