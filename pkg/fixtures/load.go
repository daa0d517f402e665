package fixtures

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// TimeLayout is the expected start_time format in fixture input.
const TimeLayout = "2006-01-02 15:04:05"

// ExpectedHeaders is the required column set for fixture input, in order.
var ExpectedHeaders = []string{"uni_team", "opposition", "start_time", "umpires_needed", "location"}

// ValidationError aggregates every problem found in a fixtures file so the
// caller can surface the full list at once instead of one error per run.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fixture input has %d problem(s):\n%s", len(e.Problems), strings.Join(e.Problems, "\n"))
}

// Load reads and validates a fixtures CSV file.
func Load(path string, teams []string, registry *venues.Registry) ([]*model.Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures file: %w", err)
	}
	defer f.Close()

	return Read(f, teams, registry)
}

// Read parses and validates fixtures CSV from a reader.
func Read(r io.Reader, teams []string, registry *venues.Registry) ([]*model.Fixture, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures CSV: %w", err)
	}

	return Parse(records, teams, registry)
}

// Parse validates tabular fixture input (header row first) and constructs
// the fixture set. All validation problems are collected and returned
// together as a ValidationError; the assignment engine must never run on a
// partially valid set.
func Parse(records [][]string, teams []string, registry *venues.Registry) ([]*model.Fixture, error) {
	var problems []string

	if len(records) == 0 {
		return nil, &ValidationError{Problems: []string{"fixture input is empty, expected a header row and at least one fixture"}}
	}

	if !slices.Equal(records[0], ExpectedHeaders) {
		problems = append(problems, fmt.Sprintf(
			"incorrect column names: got %v, expected %v - please fix the header row", records[0], ExpectedHeaders))
	}

	var fixtures []*model.Fixture
	for i, row := range records[1:] {
		rowNumber := i + 2 // header is row 1

		if len(row) != len(ExpectedHeaders) {
			problems = append(problems, fmt.Sprintf(
				"row %d - %v - has %d columns, expected %d", rowNumber, row, len(row), len(ExpectedHeaders)))
			continue
		}

		rowValid := true

		if !slices.Contains(teams, row[0]) {
			rowValid = false
			problems = append(problems, fmt.Sprintf(
				"row %d - %v - uni_team %q is not on the roster (%s)", rowNumber, row, row[0], strings.Join(teams, ", ")))
		}

		start, err := time.Parse(TimeLayout, row[2])
		if err != nil {
			rowValid = false
			problems = append(problems, fmt.Sprintf(
				"row %d - %v - start_time %q is not of the format 'YYYY-MM-DD HH:MM:SS'", rowNumber, row, row[2]))
		}

		umpires, err := strconv.Atoi(row[3])
		if err != nil {
			rowValid = false
			problems = append(problems, fmt.Sprintf(
				"row %d - %v - umpires_needed %q is not a number", rowNumber, row, row[3]))
		} else if umpires < 0 || umpires > 2 {
			rowValid = false
			problems = append(problems, fmt.Sprintf(
				"row %d - %v - umpires_needed should be 0, 1 or 2, it is currently %d", rowNumber, row, umpires))
		}

		if !registry.Contains(row[4]) {
			rowValid = false
			suggestion := registry.ClosestMatch(row[4])
			problems = append(problems, fmt.Sprintf(
				"row %d - %v - has an invalid match location %q, did you possibly mean %q? Please refer to the location table for the correct names",
				rowNumber, row, row[4], suggestion))
		}

		if !rowValid {
			continue
		}

		fixture, err := model.NewFixture(row[0], row[1], start, umpires, row[4])
		if err != nil {
			problems = append(problems, fmt.Sprintf("row %d - %v - %v", rowNumber, row, err))
			continue
		}
		fixtures = append(fixtures, fixture)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	return fixtures, nil
}
