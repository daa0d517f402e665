package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thecatthatbarks/buzzbot/pkg/fixtures"
)

var defaultOpponents = []string{
	"Wildcats", "Reivers", "Peebles", "Grange", "Watsonians", "Inverleith",
}

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var (
		ruleStr   string
		startStr  string
		opponents []string
		perDay    int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "generate <output.csv>",
		Short: "Generate a sample fixtures CSV for testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("start must be a YYYY-MM-DD date: %w", err)
			}

			registry, err := app.LoadRegistry()
			if err != nil {
				return err
			}

			all, err := fixtures.Generate(fixtures.GenerateOptions{
				RRule:         ruleStr,
				Start:         start,
				Teams:         app.Cfg.Teams,
				Opponents:     opponents,
				Venues:        registry.Names(),
				MatchesPerDay: perDay,
				Seed:          seed,
			})
			if err != nil {
				return err
			}

			out, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer out.Close()

			if err := fixtures.WriteCSV(out, all); err != nil {
				return err
			}

			fmt.Printf("\n✓ Wrote %d fixtures to %s\n\n", len(all), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleStr, "rrule", "FREQ=WEEKLY;BYDAY=SA;COUNT=6", "Recurrence rule for match days")
	cmd.Flags().StringVar(&startStr, "start", time.Now().Format("2006-01-02"), "First candidate match day (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&opponents, "opponents", defaultOpponents, "Opposition team names to draw from")
	cmd.Flags().IntVar(&perDay, "per-day", 0, "Fixtures per match day (0 uses the full roster)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed for reproducible output")

	return cmd
}
