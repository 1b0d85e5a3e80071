package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/concentration/internal/config"
	"github.com/arcanaland/concentration/internal/imageset"
)

// setCmd represents the set command group
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage image sets in your set library",
	Long:  `Commands for managing the image sets that provide card faces.`,
}

// setListCmd represents the set ls command
var setListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available image sets in your set library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetSetLibraryPath()
		if resolved, err := filepath.EvalSymlinks(libraryPath); err == nil {
			libraryPath = resolved
		}

		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Set library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'concentration set init' to create it.")
			return nil
		}

		defaultSet, err := config.GetDefaultSet()
		if err != nil {
			return fmt.Errorf("error getting default set: %w", err)
		}

		sets, names, err := imageset.ListSets(libraryPath)
		if err != nil {
			return err
		}

		builtin := imageset.Builtin()
		marker := func(isDefault bool) string {
			if isDefault {
				return colorize.GreenString("*")
			}
			return " "
		}

		fmt.Fprintf(out, "%s %s (%s, %d faces)\n", marker(defaultSet == ""), "builtin", builtin.Name, len(builtin.Faces))
		for i, s := range sets {
			fmt.Fprintf(out, "%s %s (%s, %d faces)\n", marker(names[i] == defaultSet), names[i], s.Name, len(s.Faces))
		}

		if len(sets) == 0 {
			fmt.Fprintln(out, "\nNo image sets found in your set library.")
			fmt.Fprintln(out, "You can add sets by copying them to:", libraryPath)
		}
		return nil
	},
}

// setSetDefaultCmd represents the set set-default command
var setSetDefaultCmd = &cobra.Command{
	Use:   "set-default [set_name]",
	Short: "Set the default image set ('builtin' for the glyph set)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setName := args[0]

		if setName == "builtin" {
			setName = ""
		} else {
			setPath, err := config.GetSetPath(setName)
			if err != nil {
				return err
			}

			// Load the set to make sure it's valid
			if _, err := imageset.LoadImageSet(setPath); err != nil {
				return fmt.Errorf("not a valid image set: %w", err)
			}
		}

		if err := config.SetDefaultSet(setName); err != nil {
			return fmt.Errorf("error setting default set: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default set set to: %s\n", args[0])
		return nil
	},
}

// setInitCmd represents the set init command
var setInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the set library and config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetSetLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating set library: %w", err)
		}

		fmt.Fprintln(out, "Set library initialized at:", libraryPath)
		fmt.Fprintln(out, "You can now add image sets by copying them to this directory.")

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setListCmd)
	setCmd.AddCommand(setSetDefaultCmd)
	setCmd.AddCommand(setInitCmd)
}
