package model

import (
	"fmt"
	"time"
)

// MatchDuration is the fixed length of a hockey match.
const MatchDuration = 90 * time.Minute

// Covering team sentinels written by the assignment engine.
const (
	CoveredNoUmpireNeeded = "COVERED"
	NoAvailableUmpire     = "No available umpire"
)

// Fixture represents one scheduled match between two teams.
// CoveringTeam and EligibleTeams start empty and are set exactly once
// by the assignment engine during a run.
type Fixture struct {
	Home            string
	Away            string
	StartTime       time.Time
	EndTime         time.Time
	Location        string
	UmpiresRequired int
	CoveringTeam    string
	EligibleTeams   []string
}

// NewFixture constructs a fixture and derives its end time from the fixed
// match duration. UmpiresRequired outside 0-2 is rejected here so an
// invalid fixture can never reach the engine.
func NewFixture(home, away string, start time.Time, umpiresRequired int, location string) (*Fixture, error) {
	if umpiresRequired < 0 || umpiresRequired > 2 {
		return nil, fmt.Errorf("fixture %s v %s: umpires required must be 0, 1 or 2, got %d", home, away, umpiresRequired)
	}

	return &Fixture{
		Home:            home,
		Away:            away,
		StartTime:       start,
		EndTime:         start.Add(MatchDuration),
		Location:        location,
		UmpiresRequired: umpiresRequired,
	}, nil
}

// OverlapsWith reports whether the two fixtures' time intervals overlap.
// Intervals are half-open, so back-to-back fixtures do not overlap.
func (f *Fixture) OverlapsWith(other *Fixture) bool {
	return f.StartTime.Before(other.EndTime) && f.EndTime.After(other.StartTime)
}

// Involves reports whether the given team plays in this fixture.
func (f *Fixture) Involves(team string) bool {
	return team == f.Home || team == f.Away
}

// Date returns the calendar date of the fixture's start time.
func (f *Fixture) Date() time.Time {
	y, m, d := f.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, f.StartTime.Location())
}
