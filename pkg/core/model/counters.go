package model

// LoadCounters tracks how many umpiring slots each team has been assigned
// so far in the current run. Only the assignment engine mutates it; the
// selection heuristics read it.
type LoadCounters map[string]int

// NewLoadCounters initialises a zero counter for every roster team so the
// heuristics never have to distinguish "unseen" from "unassigned".
func NewLoadCounters(teams []string) LoadCounters {
	counters := make(LoadCounters, len(teams))
	for _, team := range teams {
		counters[team] = 0
	}
	return counters
}

// Add records umpiring slots against a team.
func (lc LoadCounters) Add(team string, slots int) {
	lc[team] += slots
}

// Total returns the number of umpiring slots assigned across all teams.
func (lc LoadCounters) Total() int {
	total := 0
	for _, count := range lc {
		total += count
	}
	return total
}
