package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/concentration/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate an image set directory",
	Long: `Validate checks that an image set directory has a well-formed set.toml,
that every referenced image exists, and that no two faces are the same.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setPath := args[0]
		out := cmd.OutOrStdout()

		if _, err := os.Stat(setPath); os.IsNotExist(err) {
			return fmt.Errorf("set directory not found: %s", setPath)
		}

		v := validator.NewValidator(setPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Set '%s' is valid.\n", setPath)
		} else {
			fmt.Fprintf(out, "❌ Set '%s' has %d validation errors:\n", setPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
