package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thecatthatbarks/buzzbot/pkg/fixtures"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <fixtures.csv>",
		Short: "Validate a fixtures CSV without assigning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.LoadRegistry()
			if err != nil {
				return err
			}

			all, err := fixtures.Load(args[0], app.Cfg.Teams, registry)

			var validationErr *fixtures.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Printf("\n✗ %s has %d problem(s):\n\n", args[0], len(validationErr.Problems))
				for _, problem := range validationErr.Problems {
					fmt.Printf("  - %s\n", problem)
				}
				fmt.Println()
				return fmt.Errorf("validation failed")
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s is valid: %d fixtures\n\n", args[0], len(all))
			return nil
		},
	}
}
