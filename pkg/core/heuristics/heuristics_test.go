package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

func TestGreedyFair_PicksLowestLoad(t *testing.T) {
	heuristic := NewGreedyFair()

	counters := model.LoadCounters{"1s": 2, "2s": 2, "3s": 1}
	selected := heuristic.Evaluate([]string{"3s", "1s", "2s"}, counters)

	assert.Equal(t, "3s", selected)
}

func TestGreedyFair_LexicographicTieBreak(t *testing.T) {
	heuristic := NewGreedyFair()

	counters := model.LoadCounters{"1s": 1, "2s": 1}
	selected := heuristic.Evaluate([]string{"2s", "1s"}, counters)

	assert.Equal(t, "1s", selected)
}

func TestGreedyFair_DoesNotMutateInput(t *testing.T) {
	heuristic := NewGreedyFair()

	feasible := []string{"3s", "1s", "2s"}
	counters := model.LoadCounters{"1s": 0, "2s": 0, "3s": 0}
	heuristic.Evaluate(feasible, counters)

	assert.Equal(t, []string{"3s", "1s", "2s"}, feasible)
	assert.Equal(t, model.LoadCounters{"1s": 0, "2s": 0, "3s": 0}, counters)
}

func TestGreedyFair_SingleCandidate(t *testing.T) {
	heuristic := NewGreedyFair()
	assert.Equal(t, "5s", heuristic.Evaluate([]string{"5s"}, model.LoadCounters{}))
}

func TestForName(t *testing.T) {
	heuristic, err := ForName("greedyfair")
	require.NoError(t, err)
	assert.Equal(t, "GreedyFair", heuristic.Name())

	heuristic, err = ForName("")
	require.NoError(t, err)
	assert.Equal(t, "GreedyFair", heuristic.Name())

	_, err = ForName("simulatedAnnealing")
	assert.Error(t, err)
}
