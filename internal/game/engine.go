package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/text/language"

	"github.com/arcanaland/concentration/internal/board"
	"github.com/arcanaland/concentration/internal/deck"
)

const (
	DefaultMatchDelay    = 500 * time.Millisecond
	DefaultMismatchDelay = time.Second
)

// Phase is the position of the engine in the turn cycle
type Phase int

const (
	Idle Phase = iota
	OneSelected
	Resolving
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case OneSelected:
		return "one-selected"
	case Resolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// TurnState is the transient state of a game
type TurnState struct {
	SelectionLocked bool
	FirstSelected   *board.VisualCard
	SecondSelected  *board.VisualCard
	MatchesFound    int
	Moves           int
}

// Options configures an Engine
type Options struct {
	Faces         []string // One identifier per pair
	Back          string   // Shared back face
	MatchDelay    time.Duration
	MismatchDelay time.Duration
	Language      language.Tag
	Rand          *rand.Rand
	Logger        *slog.Logger
}

// Engine runs one memory game session. It is not safe for concurrent use:
// activations, restarts and scheduled continuations must all be delivered from
// one goroutine.
type Engine struct {
	opts     Options
	renderer *board.Renderer
	sched    Scheduler
	notifier Notifier
	log      *slog.Logger

	deck       deck.Deck
	cards      []*board.VisualCard
	state      TurnState
	generation uint64
	notified   bool
}

// New creates an engine. Start must be called to deal the first game.
func New(surface board.Surface, sched Scheduler, notifier Notifier, opts Options) *Engine {
	if opts.Rand == nil {
		opts.Rand = deck.NewRand(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Language == language.Und {
		opts.Language = DefaultLanguage
	}

	return &Engine{
		opts:     opts,
		renderer: board.NewRenderer(surface, opts.Back),
		sched:    sched,
		notifier: notifier,
		log:      opts.Logger,
	}
}

// Start deals a new game. Calling it again restarts the session: the board is
// rebuilt and continuations scheduled by the previous game are ignored.
func (e *Engine) Start() {
	e.generation++
	e.state = TurnState{}
	e.notified = false
	e.renderer.SetMoves(0)

	e.deck = deck.Build(e.opts.Faces, e.opts.Rand)
	e.cards = e.renderer.Render(e.deck, e.activate)

	e.log.Info("game started",
		"generation", e.generation,
		"pairs", e.deck.NumPairs())
}

// Restart discards the current game and deals a new one
func (e *Engine) Restart() {
	e.log.Info("game restarted",
		"generation", e.generation,
		"moves", e.state.Moves,
		"matches", e.state.MatchesFound)
	e.Start()
}

// State returns a copy of the turn state
func (e *Engine) State() TurnState {
	return e.state
}

// Phase returns the current phase of the turn cycle
func (e *Engine) Phase() Phase {
	switch {
	case e.state.SecondSelected != nil:
		return Resolving
	case e.state.FirstSelected != nil:
		return OneSelected
	default:
		return Idle
	}
}

// Cards returns the visual cards of the current game in board order
func (e *Engine) Cards() []*board.VisualCard {
	return e.cards
}

// NumPairs returns N for the current game
func (e *Engine) NumPairs() int {
	return e.deck.NumPairs()
}

// Won reports whether every pair has been found
func (e *Engine) Won() bool {
	return len(e.cards) > 0 && e.state.MatchesFound == e.deck.NumPairs()
}

func (e *Engine) activate(vc *board.VisualCard) {
	if vc.ID >= len(e.cards) || e.cards[vc.ID] != vc {
		// Handler of a card from a previous game.
		return
	}
	if e.state.SelectionLocked || !vc.Enabled || vc == e.state.FirstSelected {
		e.log.Debug("activation ignored",
			"card", vc.ID,
			"locked", e.state.SelectionLocked,
			"enabled", vc.Enabled)
		return
	}

	e.renderer.SetState(vc, board.FaceUp)

	if e.state.FirstSelected == nil {
		e.state.FirstSelected = vc
		e.log.Debug("first card selected", "card", vc.ID)
		return
	}

	e.state.SecondSelected = vc
	e.state.Moves++
	e.state.SelectionLocked = true
	e.renderer.SetMoves(e.state.Moves)
	e.log.Debug("second card selected", "card", vc.ID, "moves", e.state.Moves)

	e.resolve()
}

func (e *Engine) resolve() {
	first, second := e.state.FirstSelected, e.state.SecondSelected
	if first == nil || second == nil {
		panic(fmt.Sprintf("game: resolving turn without two selected cards (first=%v second=%v)", first != nil, second != nil))
	}

	if first.PairID != second.PairID {
		e.log.Info("mismatch", "first", first.ID, "second", second.ID, "moves", e.state.Moves)
		e.after(e.opts.MismatchDelay, func() {
			e.renderer.SetState(first, board.FaceDown)
			e.renderer.SetState(second, board.FaceDown)
			e.resetTurn()
		})
		return
	}

	e.renderer.Disable(first)
	e.renderer.Disable(second)
	e.renderer.SetState(first, board.Matched)
	e.renderer.SetState(second, board.Matched)
	e.state.MatchesFound++
	e.log.Info("match", "pair", first.PairID, "matches", e.state.MatchesFound, "moves", e.state.Moves)

	if e.state.MatchesFound == e.deck.NumPairs() {
		moves := e.state.Moves
		e.after(e.opts.MatchDelay, func() {
			if e.notified {
				return
			}
			e.notified = true
			e.log.Info("game won", "moves", moves)
			e.notifier.Notify(WinMessage(e.opts.Language, moves))
		})
	}

	e.resetTurn()
}

func (e *Engine) resetTurn() {
	e.state.SelectionLocked = false
	e.state.FirstSelected = nil
	e.state.SecondSelected = nil
}

// after schedules fn for the current game only
func (e *Engine) after(d time.Duration, fn func()) {
	gen := e.generation
	e.sched.AfterFunc(d, func() {
		if gen != e.generation {
			e.log.Debug("stale continuation dropped", "generation", gen, "current", e.generation)
			return
		}
		fn()
	})
}
