package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/concentration/internal/board"
	"github.com/arcanaland/concentration/internal/deck"
	"github.com/arcanaland/concentration/internal/game"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop(8)
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	l.Post(l.Stop)

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.False(t, l.Post(func() {}))
}

func TestLoopStopsOnContext(t *testing.T) {
	l := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, l.Post(func() {}))
}

func TestLoopAfterFuncRunsOnLoop(t *testing.T) {
	l := NewLoop(1)
	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	go func() {
		<-fired
		l.Stop()
	}()

	require.NoError(t, l.Run(context.Background()))
}

func TestLoopStopCancelsTimers(t *testing.T) {
	l := NewLoop(1)
	var fired atomic.Bool
	l.AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
	l.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestSessionPlaysToTheEnd(t *testing.T) {
	surface := board.NewMemorySurface()
	won := make(chan string, 1)
	s := New(surface, game.NotifierFunc(func(msg string) { won <- msg }), game.Options{
		Faces:         []string{"A", "B"},
		Back:          "back",
		MatchDelay:    time.Millisecond,
		MismatchDelay: time.Millisecond,
		Rand:          deck.NewRand(11),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	s.Do(func(e *game.Engine) {
		for pair := 0; pair < e.NumPairs(); pair++ {
			for _, vc := range e.Cards() {
				if vc.PairID == pair {
					surface.Activate(vc.ID)
				}
			}
		}
	})

	select {
	case msg := <-won:
		assert.Contains(t, msg, "2 movimentos")
	case <-ctx.Done():
		t.Fatal("game did not finish")
	}

	s.Stop()
	require.NoError(t, <-errc)
	assert.NotEqual(t, uuid.Nil, s.ID)
}

func TestSessionRestart(t *testing.T) {
	surface := board.NewMemorySurface()
	s := New(surface, game.NotifierFunc(func(string) {}), game.Options{
		Faces:         []string{"A", "B", "C"},
		MismatchDelay: time.Hour,
		Rand:          deck.NewRand(3),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	s.Do(func(e *game.Engine) {
		var a, b int
		for _, vc := range e.Cards() {
			switch vc.PairID {
			case 0:
				a = vc.ID
			case 1:
				b = vc.ID
			}
		}
		surface.Activate(a)
		surface.Activate(b)
	})
	s.Restart()

	states := make(chan game.TurnState, 1)
	s.Do(func(e *game.Engine) { states <- e.State() })

	select {
	case st := <-states:
		assert.Equal(t, game.TurnState{}, st)
	case <-ctx.Done():
		t.Fatal("no state")
	}

	s.Stop()
	require.NoError(t, <-errc)
}

func TestLoopAfterTask(t *testing.T) {
	l := NewLoop(4)
	var order []string
	l.AfterTask(func() { order = append(order, "after") })
	l.Post(func() { order = append(order, "task") })
	l.Post(l.Stop)

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []string{"task", "after", "after"}, order)
}
