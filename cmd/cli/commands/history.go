package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved assignment runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.HistoryStore()
			if err != nil {
				return err
			}
			defer database.Close()

			runs, err := database.GetRuns(app.Ctx)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("\nNo saved assignment runs.")
				return nil
			}

			fmt.Printf("\nFound %d assignment runs:\n\n", len(runs))
			for _, run := range runs {
				fmt.Printf("  %s  %s  %-12s fixtures: %-3d umpires: %d\n",
					run.RanAt.Format("2006-01-02 15:04"),
					run.ID,
					run.Heuristic,
					run.FixtureCount,
					run.UmpiresSupplied,
				)
			}
			fmt.Println()

			return nil
		},
	}
}
