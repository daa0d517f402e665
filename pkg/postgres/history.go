package postgres

import (
	"context"
	"fmt"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/db"
)

// InsertRun persists a run and its per-fixture records in one transaction.
func (d *DB) InsertRun(ctx context.Context, run *db.AssignmentRun, records []db.AssignmentRecord) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO assignment_run (id, ran_at, heuristic, fixture_count, umpires_supplied)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.RanAt, run.Heuristic, run.FixtureCount, run.UmpiresSupplied)
	if err != nil {
		return fmt.Errorf("failed to insert assignment run: %w", err)
	}

	for _, record := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment_record
				(id, run_id, home, away, start_time, location, umpires_required, covering_team, eligible_teams)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, record.ID, record.RunID, record.Home, record.Away, record.StartTime,
			record.Location, record.UmpiresRequired, record.CoveringTeam, record.EligibleTeams)
		if err != nil {
			return fmt.Errorf("failed to insert assignment record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRuns retrieves all assignment runs, newest first.
func (d *DB) GetRuns(ctx context.Context) ([]db.AssignmentRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, ran_at, heuristic, fixture_count, umpires_supplied
		FROM assignment_run
		ORDER BY ran_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment runs: %w", err)
	}
	defer rows.Close()

	var runs []db.AssignmentRun
	for rows.Next() {
		var run db.AssignmentRun
		if err := rows.Scan(&run.ID, &run.RanAt, &run.Heuristic, &run.FixtureCount, &run.UmpiresSupplied); err != nil {
			return nil, fmt.Errorf("failed to scan assignment run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment runs: %w", err)
	}

	return runs, nil
}

// SeasonLoadCounts sums the umpiring slots supplied per team across all
// recorded runs, excluding the sentinel outcomes. Used to seed the
// engine's load counters so fairness carries across match days.
func (d *DB) SeasonLoadCounts(ctx context.Context) (map[string]int, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT covering_team, COALESCE(SUM(umpires_required), 0)
		FROM assignment_record
		WHERE covering_team NOT IN ($1, $2)
		GROUP BY covering_team
	`, model.CoveredNoUmpireNeeded, model.NoAvailableUmpire)
	if err != nil {
		return nil, fmt.Errorf("failed to query season load counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var team string
		var total int
		if err := rows.Scan(&team, &total); err != nil {
			return nil, fmt.Errorf("failed to scan season load count: %w", err)
		}
		counts[team] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season load counts: %w", err)
	}

	return counts, nil
}
