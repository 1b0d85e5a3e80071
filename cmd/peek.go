package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/concentration/internal/config"
	"github.com/arcanaland/concentration/internal/imageset"
	"github.com/arcanaland/concentration/internal/terminal"
)

var peekCmd = &cobra.Command{
	Use:   "peek [face_number]",
	Short: "Display a card face of an image set with ANSI art",
	Long: `Peek shows one face of an image set the way it looks on a large card.
Faces are numbered from 1 in set.toml order. Use 'back' for the back face.

You can specify a set using the --set flag, which will look for the set in
your set library (XDG_DATA_HOME/concentration/sets) or as a relative path.
If no set is specified, the default set from your config will be used.

Examples:
  concentration peek 1
  concentration peek --set fruit back`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setFlag, _ := cmd.Flags().GetString("set")
		width, _ := cmd.Flags().GetInt("width")

		setName := setFlag
		if setName == "" {
			defaultSet, err := config.GetDefaultSet()
			if err != nil {
				return fmt.Errorf("error getting default set: %w", err)
			}
			setName = defaultSet
		}

		set, err := loadSet(setName)
		if err != nil {
			return err
		}

		id, label, err := pickFace(set, args[0])
		if err != nil {
			return err
		}

		if width <= 0 {
			width = min(40, terminal.Width(os.Stdout)/2)
		}

		var art string
		if glyph, ok := strings.CutPrefix(id, imageset.GlyphPrefix); ok {
			art = colorize.New(colorize.FgHiWhite, colorize.Bold).Sprint(glyph) + "\n"
		} else {
			cache := terminal.NewArtCache(filepath.Join(config.GetCacheDir(), "ansi_cache"), width, width*4/5)
			lines, err := cache.Lines(id)
			if err != nil {
				return fmt.Errorf("error rendering face: %w", err)
			}
			art = strings.Join(lines, "\n") + "\n"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprint(out, art)
		fmt.Fprintln(out)
		fmt.Fprintln(out, colorize.CyanString("Set:   ")+colorize.HiWhiteString(set.Name))
		fmt.Fprintln(out, colorize.CyanString("Face:  ")+colorize.HiWhiteString(label))
		fmt.Fprintln(out, colorize.CyanString("Image: ")+colorize.HiWhiteString(id))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(peekCmd)

	peekCmd.Flags().StringP("set", "s", "", "Specify a set from your set library or a path to a set")
	peekCmd.Flags().IntP("width", "w", 0, "Art width in columns (default fits the terminal)")
}

// pickFace resolves a face argument: a 1-based face number or "back"
func pickFace(set *imageset.ImageSet, arg string) (id, label string, err error) {
	if arg == "back" {
		return set.BackIdentifier(), "back", nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(set.Faces) {
		return "", "", fmt.Errorf("invalid face number: %s (set has %d faces)", arg, len(set.Faces))
	}

	id = set.Identifier(set.Faces[n-1])
	return id, set.LabelFor(id), nil
}
