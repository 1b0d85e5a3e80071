package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/concentration/internal/config"
	"github.com/arcanaland/concentration/internal/deck"
	"github.com/arcanaland/concentration/internal/game"
	"github.com/arcanaland/concentration/internal/imageset"
	"github.com/arcanaland/concentration/internal/logging"
	"github.com/arcanaland/concentration/internal/session"
	"github.com/arcanaland/concentration/internal/terminal"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Play deals a new board and starts the game.

Keys:
  arrows, hjkl, wasd   move the cursor
  space, enter         reveal the card under the cursor
  r                    restart with a new shuffle
  q, ctrl-c            quit

Examples:
  concentration play
  concentration play --set fruit --pairs 8
  concentration play --seed 42 --lang en`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	RootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("set", "s", "", "Image set from your set library or a path to a set")
	cmd.Flags().IntP("pairs", "n", 0, "Number of pairs on the board (default from config)")
	cmd.Flags().Uint64("seed", 0, "Shuffle seed, 0 for a random shuffle")
	cmd.Flags().String("lang", "", "Message language: pt-BR or en")
}

// gameSettings is the configuration of one run after flags are applied
type gameSettings struct {
	cfg  *config.Config
	set  *imageset.ImageSet
	seed uint64
}

func resolveSettings(cmd *cobra.Command) (*gameSettings, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	setFlag, _ := cmd.Flags().GetString("set")
	if setFlag != "" {
		cfg.DefaultSet = setFlag
	}
	if pairs, _ := cmd.Flags().GetInt("pairs"); pairs != 0 {
		cfg.Pairs = pairs
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		cfg.Language = lang
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed, _ := cmd.Flags().GetUint64("seed")

	set, err := loadSet(cfg.DefaultSet)
	if err != nil {
		return nil, err
	}

	return &gameSettings{cfg: cfg, set: set, seed: seed}, nil
}

// loadSet loads a set by library name or path. An empty name is the built-in set.
func loadSet(name string) (*imageset.ImageSet, error) {
	if name == "" {
		return imageset.Builtin(), nil
	}

	setPath, err := config.GetSetPath(name)
	if err != nil {
		return nil, err
	}

	set, err := imageset.LoadImageSet(setPath)
	if err != nil {
		return nil, fmt.Errorf("error loading image set: %w", err)
	}
	return set, nil
}

func (s *gameSettings) engineOptions() (game.Options, error) {
	lang, err := game.ParseLanguage(s.cfg.Language)
	if err != nil {
		return game.Options{}, err
	}

	return game.Options{
		Faces:         s.set.FaceIdentifiers(s.cfg.Pairs),
		Back:          s.set.BackIdentifier(),
		MatchDelay:    time.Duration(s.cfg.MatchDelay),
		MismatchDelay: time.Duration(s.cfg.MismatchDelay),
		Language:      lang,
		Rand:          deck.NewRand(s.seed),
	}, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	opts, err := settings.engineOptions()
	if err != nil {
		return err
	}

	logger, closer, err := logging.Setup(settings.cfg.LogLevel, settings.cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()
	opts.Logger = logger.With("set", settings.set.ID)

	tty, err := terminal.OpenTTY(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer tty.Close()

	surface := terminal.NewSurface(os.Stdout, terminal.Options{
		Title:    settings.set.Name,
		Language: opts.Language,
		CacheDir: filepath.Join(config.GetCacheDir(), "ansi_cache"),
	})

	sess := session.New(surface, surface, opts)
	sess.AfterEvent(func() {
		if err := surface.Draw(); err != nil {
			logger.Error("draw failed", "error", err)
		}
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go dispatchKeys(terminal.ReadKeys(ctx, os.Stdin), sess, surface, cancel)

	err = sess.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// dispatchKeys turns key presses into session events. It cancels the game
// on quit or when input ends.
func dispatchKeys(keys <-chan terminal.Key, sess *session.Session, surface *terminal.Surface, cancel context.CancelFunc) {
	defer cancel()

	move := func(dx, dy int) {
		sess.Do(func(*game.Engine) { surface.MoveCursor(dx, dy) })
	}

	for k := range keys {
		switch k {
		case terminal.KeyQuit:
			return
		case terminal.KeyRestart:
			sess.Restart()
		case terminal.KeyActivate:
			sess.Do(func(*game.Engine) { surface.ActivateCursor() })
		case terminal.KeyUp:
			move(0, -1)
		case terminal.KeyDown:
			move(0, 1)
		case terminal.KeyLeft:
			move(-1, 0)
		case terminal.KeyRight:
			move(1, 0)
		}
	}
}
