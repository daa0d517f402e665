package travel

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// precomputeConcurrency bounds the parallel remote lookups so the
// rate-limited service isn't hammered.
const precomputeConcurrency = 4

// Precompute warms the cache with one lookup per unordered pair across the
// given match-day coordinates. The lookups are independent, so they run in
// parallel; the oracle's mutex serialises cache access.
//
// A pair that fails remotely is logged and left unresolved rather than
// aborting the rest of the table. It only becomes fatal later, if the
// eligibility evaluator actually needs it.
func (o *Oracle) Precompute(ctx context.Context, coords []venues.Coordinates) error {
	pairs := uniquePairs(coords)

	o.logger.Info("Precomputing travel time table",
		zap.Int("venues", len(coords)),
		zap.Int("pairs", len(pairs)),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(precomputeConcurrency)

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			_, err := o.travelSeconds(ctx, pair[0], pair[1])

			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				// Already logged by the oracle; the pair stays unresolved.
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	o.logger.Info("Travel time table ready",
		zap.Int("cached_pairs", o.CachedPairs()),
		zap.Int("remote_requests", o.RequestCount()),
	)

	return nil
}

// uniquePairs returns the distinct unordered coordinate pairs, excluding
// identical coordinates (those never need a lookup).
func uniquePairs(coords []venues.Coordinates) [][2]venues.Coordinates {
	unique := make([]venues.Coordinates, 0, len(coords))
	seen := make(map[venues.Coordinates]bool)
	for _, c := range coords {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}

	var pairs [][2]venues.Coordinates
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			pairs = append(pairs, [2]venues.Coordinates{unique[i], unique[j]})
		}
	}
	return pairs
}
