package sheetsclient

import (
	"fmt"
	"strconv"

	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/fixtures"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// ReadFixtures reads the fixtures tab and runs it through the same
// validation as CSV input.
func (c *Client) ReadFixtures(spreadsheetID, tab string, teams []string, registry *venues.Registry) ([]*model.Fixture, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures tab %q: %w", tab, err)
	}

	return fixtures.Parse(toRecords(values), teams, registry)
}

// ReadLocations reads the venue reference tab
// (LocationName / Latitude / Longitude columns).
func (c *Client) ReadLocations(spreadsheetID, tab string) (*venues.Registry, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations tab %q: %w", tab, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("locations tab %q is empty", tab)
	}

	locations := make(map[string]venues.Coordinates)
	for i, row := range toRecords(values)[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("locations tab %q row %d has %d columns, expected 3", tab, i+2, len(row))
		}

		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("locations tab %q venue %q: bad latitude %q: %w", tab, row[0], row[1], err)
		}
		lng, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("locations tab %q venue %q: bad longitude %q: %w", tab, row[0], row[2], err)
		}

		locations[row[0]] = venues.Coordinates{Lat: lat, Lng: lng}
	}

	return venues.NewRegistry(locations), nil
}

// toRecords flattens the Sheets API cell values to the string records the
// fixtures parser expects.
func toRecords(values [][]interface{}) [][]string {
	records := make([][]string, len(values))
	for i, row := range values {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = fmt.Sprintf("%v", cell)
		}
		records[i] = record
	}
	return records
}
