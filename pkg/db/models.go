package db

import "time"

// AssignmentRun records one complete pass of the assignment engine.
type AssignmentRun struct {
	ID              string
	RanAt           time.Time
	Heuristic       string
	FixtureCount    int
	UmpiresSupplied int
}

// AssignmentRecord is one fixture's outcome within a run.
type AssignmentRecord struct {
	ID              string
	RunID           string
	Home            string
	Away            string
	StartTime       time.Time
	Location        string
	UmpiresRequired int
	CoveringTeam    string
	EligibleTeams   []string
}
