package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LocationsCmd creates the locations command
func LocationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the known venues and their coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.LoadRegistry()
			if err != nil {
				return err
			}

			names := registry.Names()
			fmt.Printf("\nFound %d venues:\n\n", len(names))
			for _, name := range names {
				coords, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-30s %10.6f, %10.6f\n", name, coords.Lat, coords.Lng)
			}
			fmt.Println()

			return nil
		},
	}
}
