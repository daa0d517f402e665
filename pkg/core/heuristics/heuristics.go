package heuristics

import (
	"fmt"
	"sort"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

// Selection picks exactly one team from a non-empty feasible set. The
// engine handles the empty case itself, so implementations may assume at
// least one candidate. Implementations read the load counters but never
// mutate them.
type Selection interface {
	// Name returns a human-readable identifier for this heuristic
	Name() string

	// Evaluate returns the best team to umpire from the feasible set
	Evaluate(feasibleTeams []string, counters model.LoadCounters) string
}

// GreedyFair picks the team with the fewest umpiring slots assigned so far,
// breaking ties by lexicographic team name for determinism. Fast and
// locally fair, not globally optimal: assignment order affects the final
// distribution.
type GreedyFair struct{}

// NewGreedyFair creates the greedy-fair selection heuristic.
func NewGreedyFair() *GreedyFair {
	return &GreedyFair{}
}

func (g *GreedyFair) Name() string {
	return "GreedyFair"
}

func (g *GreedyFair) Evaluate(feasibleTeams []string, counters model.LoadCounters) string {
	ranked := make([]string, len(feasibleTeams))
	copy(ranked, feasibleTeams)

	sort.Slice(ranked, func(i, j int) bool {
		if counters[ranked[i]] != counters[ranked[j]] {
			return counters[ranked[i]] < counters[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	return ranked[0]
}

// ForName resolves a configured heuristic name to an implementation.
func ForName(name string) (Selection, error) {
	switch name {
	case "", "greedyfair", "GreedyFair":
		return NewGreedyFair(), nil
	default:
		return nil, fmt.Errorf("unknown selection heuristic %q", name)
	}
}
