package session

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arcanaland/concentration/internal/board"
	"github.com/arcanaland/concentration/internal/game"
)

// Session hosts one game engine on its own event loop
type Session struct {
	ID     uuid.UUID
	engine *game.Engine
	loop   *Loop
	log    *slog.Logger
}

// New creates a session. The engine is dealt its first game when Run starts.
func New(surface board.Surface, notifier game.Notifier, opts game.Options) *Session {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("session_id", id.String())
	opts.Logger = logger

	loop := NewLoop(64)
	return &Session{
		ID:     id,
		engine: game.New(surface, loop, notifier, opts),
		loop:   loop,
		log:    logger,
	}
}

// Run starts the game and processes events until ctx is done or Stop is
// called.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("session started")
	s.loop.Post(s.engine.Start)

	err := s.loop.Run(ctx)

	st := s.engine.State()
	s.log.Info("session ended", "moves", st.Moves, "matches", st.MatchesFound)
	return err
}

// Do runs fn with the engine on the session goroutine
func (s *Session) Do(fn func(e *game.Engine)) bool {
	return s.loop.Post(func() { fn(s.engine) })
}

// AfterEvent sets a function run on the session goroutine after every
// handled event. It must be called before Run.
func (s *Session) AfterEvent(fn func()) {
	s.loop.AfterTask(fn)
}

// Restart deals a new game
func (s *Session) Restart() bool {
	return s.loop.Post(s.engine.Restart)
}

// Stop ends Run
func (s *Session) Stop() {
	s.loop.Stop()
}
