package travel

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// NotFoundError means a travel time could not be resolved for a pair from
// either the cache or the remote service. Eligibility decisions must never
// guess a travel time, so callers treat this as fatal.
type NotFoundError struct {
	Origin      string
	Destination string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("travel time not found for origin %q and destination %q", e.Origin, e.Destination)
}

// Oracle answers travel-time queries for unordered coordinate pairs, backed
// by the persistent cache and falling back to the remote service on a full
// miss. The mutex guards the cache's read-check-then-write-on-miss sequence
// so the parallel bulk precompute cannot race on a key.
type Oracle struct {
	cache  *Cache
	client RouteClient
	logger *zap.Logger

	mu           sync.Mutex
	requestCount int
}

// NewOracle wires a cache and remote client together.
func NewOracle(cache *Cache, client RouteClient, logger *zap.Logger) *Oracle {
	return &Oracle{
		cache:  cache,
		client: client,
		logger: logger,
	}
}

// TravelMinutes returns the travel time between two coordinates in whole
// minutes (floor of the cached seconds value).
//
// Identical coordinates short-circuit to 0 with no cache or remote access.
// Otherwise the forward key and then the reverse key are tried against the
// cache; on a full miss exactly one remote request is made and the result is
// stored under the forward key with an immediate durable write. A remote
// failure surfaces as a NotFoundError for the pair.
func (o *Oracle) TravelMinutes(ctx context.Context, origin, destination venues.Coordinates) (int, error) {
	if origin == destination {
		return 0, nil
	}

	seconds, err := o.travelSeconds(ctx, origin, destination)
	if err != nil {
		return 0, err
	}
	return seconds / 60, nil
}

// RequestCount returns how many remote lookups this oracle has issued.
func (o *Oracle) RequestCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.requestCount
}

// CachedPairs returns the number of entries in the backing cache.
func (o *Oracle) CachedPairs() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cache.Len()
}

func (o *Oracle) travelSeconds(ctx context.Context, origin, destination venues.Coordinates) (int, error) {
	forwardKey := PairKey(origin, destination)
	reverseKey := PairKey(destination, origin)

	o.mu.Lock()
	if seconds, ok := o.cache.Get(forwardKey); ok {
		o.mu.Unlock()
		return seconds, nil
	}
	if seconds, ok := o.cache.Get(reverseKey); ok {
		o.mu.Unlock()
		return seconds, nil
	}
	o.requestCount++
	o.mu.Unlock()

	seconds, err := o.client.TravelSeconds(ctx, origin, destination)
	if err != nil {
		o.logger.Warn("Remote travel time lookup failed",
			zap.String("origin", coordString(origin)),
			zap.String("destination", coordString(destination)),
			zap.Error(err),
		)
		return 0, &NotFoundError{
			Origin:      coordString(origin),
			Destination: coordString(destination),
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.cache.Put(forwardKey, seconds); err != nil {
		return 0, fmt.Errorf("failed to persist travel cache entry: %w", err)
	}

	return seconds, nil
}
