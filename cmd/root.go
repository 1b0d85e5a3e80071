package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command. Without a subcommand it plays a game.
var RootCmd = &cobra.Command{
	Use:   "concentration",
	Short: "Memory matching card game for the terminal",
	Long: `Concentration is a memory matching card game played in the terminal.
Cards are dealt face down; reveal two at a time to find every pair in as
few moves as possible.

Card faces come from image sets stored in your set library
(XDG_DATA_HOME/concentration/sets). Without a set, built-in glyphs are used.`,
	Args:          cobra.NoArgs,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addPlayFlags(RootCmd)
	RootCmd.AddCommand(validateCmd)
}
