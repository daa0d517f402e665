package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thecatthatbarks/buzzbot/pkg/core/engine"
	"github.com/thecatthatbarks/buzzbot/pkg/core/model"
	"github.com/thecatthatbarks/buzzbot/pkg/core/services"
	"github.com/thecatthatbarks/buzzbot/pkg/db"
	"github.com/thecatthatbarks/buzzbot/pkg/fixtures"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	var (
		fromSheet   bool
		publish     bool
		seedHistory bool
		saveRun     bool
	)

	cmd := &cobra.Command{
		Use:   "assign [fixtures.csv]",
		Short: "Assign a covering team to every fixture",
		Long: `Assign a covering team to every fixture in the input, balancing umpiring
load across the roster. Fixtures come from a CSV file, or from the
configured Google Sheet with --from-sheet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, registry, err := loadFixtureInput(app, args, fromSheet)
			if err != nil {
				return err
			}

			oracle, err := app.TravelOracle()
			if err != nil {
				return err
			}

			var store db.HistoryStore
			if seedHistory || saveRun {
				database, err := app.HistoryStore()
				if err != nil {
					return err
				}
				defer database.Close()
				store = database
			}

			result, err := services.AssignCoverage(
				app.Ctx,
				app.Cfg,
				all,
				registry,
				oracle,
				store,
				app.Logger,
				services.AssignOptions{
					SeedHistory: seedHistory,
					SaveRun:     saveRun,
				},
			)
			if err != nil {
				return err
			}

			printAssignments(result)

			if publish {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				if err := client.PublishAssignments(app.Cfg.Sheets.SpreadsheetID, app.Cfg.Sheets.AssignmentsTab, result.Fixtures); err != nil {
					return err
				}
				fmt.Printf("✓ Assignments published to tab %q\n\n", app.Cfg.Sheets.AssignmentsTab)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromSheet, "from-sheet", false, "Read fixtures and locations from the configured Google Sheet")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the assignments to the configured Google Sheet")
	cmd.Flags().BoolVar(&seedHistory, "seed-history", false, "Seed load counters with season-to-date tallies from the history database")
	cmd.Flags().BoolVar(&saveRun, "save", false, "Save the run to the history database")

	return cmd
}

// loadFixtureInput resolves the venue registry and validated fixture list
// from either a CSV file or the configured Google Sheet.
func loadFixtureInput(app *AppContext, args []string, fromSheet bool) ([]*model.Fixture, *venues.Registry, error) {
	if fromSheet {
		client, err := app.SheetsClient()
		if err != nil {
			return nil, nil, err
		}

		registry, err := client.ReadLocations(app.Cfg.Sheets.SpreadsheetID, app.Cfg.Sheets.LocationsTab)
		if err != nil {
			return nil, nil, err
		}

		all, err := client.ReadFixtures(app.Cfg.Sheets.SpreadsheetID, app.Cfg.Sheets.FixturesTab, app.Cfg.Teams, registry)
		if err != nil {
			return nil, nil, err
		}

		return all, registry, nil
	}

	if len(args) == 0 {
		return nil, nil, fmt.Errorf("a fixtures CSV file is required unless --from-sheet is set")
	}

	registry, err := app.LoadRegistry()
	if err != nil {
		return nil, nil, err
	}

	all, err := fixtures.Load(args[0], app.Cfg.Teams, registry)
	if err != nil {
		return nil, nil, err
	}

	return all, registry, nil
}

func printAssignments(result *services.AssignResult) {
	fmt.Printf("\n✓ Assignments complete!\n\n")

	for _, group := range engine.GroupByDate(result.Fixtures) {
		fmt.Printf("%s\n", group.Date.Format("Monday 02 January 2006"))
		for _, fixture := range group.Fixtures {
			fmt.Printf("  %s  %s vs %s @ %s\n", fixture.StartTime.Format("15:04"), fixture.Home, fixture.Away, fixture.Location)
			fmt.Printf("         cover: %s\n", fixture.CoveringTeam)
			if fixture.CoveringTeam != model.CoveredNoUmpireNeeded {
				fmt.Printf("         eligible: %s\n", eligibleList(fixture))
			}
		}
		fmt.Println()
	}

	fmt.Printf("Umpiring load:\n")
	teams := make([]string, 0, len(result.Counters))
	for team := range result.Counters {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	for _, team := range teams {
		fmt.Printf("  %-8s %d\n", team, result.Counters[team])
	}
	fmt.Printf("\nTotal umpires supplied: %d\n", result.UmpiresSupplied)
	fmt.Printf("Remote travel lookups:  %d\n\n", result.RemoteRequests)
}

func eligibleList(fixture *model.Fixture) string {
	if len(fixture.EligibleTeams) == 0 {
		return "(none)"
	}
	return strings.Join(fixture.EligibleTeams, ", ")
}
