package fixtures

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

// GenerateOptions controls sample fixture generation. The recurrence rule
// picks the match days; each day gets a handful of fixtures at staggered
// afternoon push-backs.
type GenerateOptions struct {
	// RRule is a recurrence rule for match days, e.g. "FREQ=WEEKLY;BYDAY=SA;COUNT=6"
	RRule string

	// Start anchors the recurrence (the first candidate match day)
	Start time.Time

	// Teams is the roster to draw home teams from
	Teams []string

	// Opponents to draw away teams from
	Opponents []string

	// Venues to draw match locations from
	Venues []string

	// MatchesPerDay caps fixtures per match day (also capped by roster size)
	MatchesPerDay int

	// Seed makes generation reproducible
	Seed int64
}

// Generate builds a plausible fixture list for testing and demos, the
// match days driven by the recurrence rule.
func Generate(opts GenerateOptions) ([]*model.Fixture, error) {
	if len(opts.Teams) == 0 || len(opts.Opponents) == 0 || len(opts.Venues) == 0 {
		return nil, fmt.Errorf("generation needs at least one team, opponent and venue")
	}

	rule, err := rrule.StrToRRule(opts.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", opts.RRule, err)
	}
	rule.DTStart(opts.Start)

	matchDays := rule.All()
	if len(matchDays) == 0 {
		return nil, fmt.Errorf("rrule %q yields no match days from %s", opts.RRule, opts.Start.Format("2006-01-02"))
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	perDay := opts.MatchesPerDay
	if perDay <= 0 || perDay > len(opts.Teams) {
		perDay = len(opts.Teams)
	}

	var all []*model.Fixture
	for _, day := range matchDays {
		teams := rng.Perm(len(opts.Teams))[:perDay]
		times := matchTimes(rng, day, perDay)

		for i, teamIdx := range teams {
			umpires := weightedUmpires(rng)
			fixture, err := model.NewFixture(
				opts.Teams[teamIdx],
				opts.Opponents[rng.Intn(len(opts.Opponents))],
				times[i],
				umpires,
				opts.Venues[rng.Intn(len(opts.Venues))],
			)
			if err != nil {
				return nil, err
			}
			all = append(all, fixture)
		}
	}

	return all, nil
}

// matchTimes returns n distinct half-hour push-backs between 11:30 and
// 20:00 on the given day.
func matchTimes(rng *rand.Rand, day time.Time, n int) []time.Time {
	const slots = 18 // 11:30 through 20:00 in half-hour steps
	picked := rng.Perm(slots)[:min(n, slots)]

	times := make([]time.Time, 0, n)
	for _, slot := range picked {
		y, m, d := day.Date()
		start := time.Date(y, m, d, 11, 30, 0, 0, day.Location()).Add(time.Duration(slot) * 30 * time.Minute)
		times = append(times, start)
	}
	return times
}

// weightedUmpires mirrors the distribution seen in real fixture lists:
// most matches need one umpire, a few none, the odd one two.
func weightedUmpires(rng *rand.Rand) int {
	switch roll := rng.Intn(100); {
	case roll < 10:
		return 0
	case roll < 95:
		return 1
	default:
		return 2
	}
}

// WriteCSV writes fixtures in the standard input format.
func WriteCSV(w io.Writer, all []*model.Fixture) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ExpectedHeaders); err != nil {
		return fmt.Errorf("failed to write fixtures header: %w", err)
	}

	for _, fixture := range all {
		record := []string{
			fixture.Home,
			fixture.Away,
			fixture.StartTime.Format(TimeLayout),
			strconv.Itoa(fixture.UmpiresRequired),
			fixture.Location,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write fixture row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
