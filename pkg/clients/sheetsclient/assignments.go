package sheetsclient

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thecatthatbarks/buzzbot/pkg/core/engine"
	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
)

// PublishAssignments writes the assignment grid to the given tab,
// replacing whatever is there.
func (c *Client) PublishAssignments(spreadsheetID, tab string, all []*model.Fixture) error {
	if err := c.ClearValues(spreadsheetID, tab); err != nil {
		return err
	}

	grid := BuildAssignmentGrid(all)
	if err := c.UpdateValues(spreadsheetID, tab, grid); err != nil {
		return fmt.Errorf("failed to publish assignments to tab %q: %w", tab, err)
	}

	return nil
}

// BuildAssignmentGrid renders assigned fixtures as a spreadsheet grid.
// One column per home team; each match day contributes a fixture row, a
// cover-recommendation row and an eligible-teams row, separated from the
// next day by two blank rows.
func BuildAssignmentGrid(all []*model.Fixture) [][]interface{} {
	teams := homeTeams(all)

	header := []interface{}{"Day", "Date"}
	for _, team := range teams {
		header = append(header, team)
	}

	grid := [][]interface{}{header}

	for _, group := range engine.GroupByDate(all) {
		fixtureRow := emptyRow(len(header))
		fixtureRow[0] = group.Date.Format("Monday")
		fixtureRow[1] = group.Date.Format("02/01/2006")

		coverRow := emptyRow(len(header))
		coverRow[1] = "Buzzbot cover recommendation"

		eligibleRow := emptyRow(len(header))
		eligibleRow[1] = "All eligible covering teams"

		for _, fixture := range group.Fixtures {
			col := teamColumn(teams, fixture.Home)
			if col < 0 {
				continue
			}
			fixtureRow[col] = fmt.Sprintf("%s %s PB @ %s", fixture.Away, fixture.StartTime.Format("15:04"), fixture.Location)
			coverRow[col] = fixture.CoveringTeam
			eligibleRow[col] = strings.Join(fixture.EligibleTeams, ", ")
		}

		grid = append(grid, fixtureRow, coverRow, eligibleRow, emptyRow(len(header)), emptyRow(len(header)))
	}

	return grid
}

func homeTeams(all []*model.Fixture) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, fixture := range all {
		if !seen[fixture.Home] {
			seen[fixture.Home] = true
			teams = append(teams, fixture.Home)
		}
	}
	sort.Strings(teams)
	return teams
}

func teamColumn(teams []string, team string) int {
	for i, t := range teams {
		if t == team {
			return i + 2 // after Day and Date
		}
	}
	return -1
}

func emptyRow(width int) []interface{} {
	row := make([]interface{}, width)
	for i := range row {
		row[i] = ""
	}
	return row
}
