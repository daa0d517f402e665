package db

import "context"

// HistoryStore persists assignment runs and answers season-to-date
// umpiring tallies. The tallies can seed the engine's load counters so
// fairness extends across runs instead of resetting every match day.
type HistoryStore interface {
	InsertRun(ctx context.Context, run *AssignmentRun, records []AssignmentRecord) error
	GetRuns(ctx context.Context) ([]AssignmentRun, error)
	SeasonLoadCounts(ctx context.Context) (map[string]int, error)
}
