package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thecatthatbarks/buzzbot/pkg/core/engine"
	"github.com/thecatthatbarks/buzzbot/pkg/fixtures"
	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// PrecomputeCmd creates the precompute command
func PrecomputeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "precompute [fixtures.csv]",
		Short: "Prime the travel-time cache",
		Long: `Prime the travel-time cache ahead of an assignment run. With a fixtures
CSV only the venues appearing in those fixtures are fetched; without one
every venue pair in the registry is fetched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.LoadRegistry()
			if err != nil {
				return err
			}

			var names []string
			if len(args) > 0 {
				all, err := fixtures.Load(args[0], app.Cfg.Teams, registry)
				if err != nil {
					return err
				}
				names = engine.MatchDayLocations(all)
			} else {
				names = registry.Names()
			}

			coords := make([]venues.Coordinates, 0, len(names))
			for _, name := range names {
				c, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				coords = append(coords, c)
			}

			oracle, err := app.TravelOracle()
			if err != nil {
				return err
			}

			if err := oracle.Precompute(app.Ctx, coords); err != nil {
				return err
			}

			fmt.Printf("\n✓ Travel cache primed for %d venues\n", len(coords))
			fmt.Printf("  cached pairs:    %d\n", oracle.CachedPairs())
			fmt.Printf("  remote requests: %d\n\n", oracle.RequestCount())

			return nil
		},
	}
}
