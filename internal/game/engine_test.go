package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/arcanaland/concentration/internal/board"
	"github.com/arcanaland/concentration/internal/deck"
)

type harness struct {
	t        *testing.T
	engine   *Engine
	surface  *board.MemorySurface
	sched    *ManualScheduler
	messages []string
}

func newHarness(t *testing.T, faces []string, seed uint64) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		surface: board.NewMemorySurface(),
		sched:   &ManualScheduler{},
	}
	h.engine = New(h.surface, h.sched, NotifierFunc(func(msg string) {
		h.messages = append(h.messages, msg)
	}), Options{
		Faces:         faces,
		Back:          "back.png",
		MatchDelay:    DefaultMatchDelay,
		MismatchDelay: DefaultMismatchDelay,
		Rand:          deck.NewRand(seed),
	})
	h.engine.Start()
	return h
}

// positions returns the board positions holding the given pair
func (h *harness) positions(pairID int) []int {
	var out []int
	for _, vc := range h.engine.Cards() {
		if vc.PairID == pairID {
			out = append(out, vc.ID)
		}
	}
	require.Len(h.t, out, 2)
	return out
}

func (h *harness) click(i int) {
	h.surface.Activate(i)
}

func (h *harness) card(i int) *board.VisualCard {
	return h.engine.Cards()[i]
}

func TestTwoPairGame(t *testing.T) {
	h := newHarness(t, []string{"A", "B"}, 1)
	a, b := h.positions(0), h.positions(1)

	h.click(a[0])
	assert.Equal(t, OneSelected, h.engine.Phase())
	assert.Equal(t, 0, h.engine.State().Moves)

	h.click(a[1])
	st := h.engine.State()
	assert.Equal(t, 1, st.Moves)
	assert.Equal(t, 1, st.MatchesFound)
	assert.False(t, st.SelectionLocked)
	assert.Nil(t, st.FirstSelected)
	assert.Nil(t, st.SecondSelected)
	assert.Equal(t, Idle, h.engine.Phase())
	assert.Equal(t, 1, h.surface.Moves())

	h.click(b[0])
	h.click(b[1])
	st = h.engine.State()
	assert.Equal(t, 2, st.Moves)
	assert.Equal(t, 2, st.MatchesFound)
	assert.True(t, h.engine.Won())

	h.sched.Advance(499 * time.Millisecond)
	assert.Empty(t, h.messages)

	h.sched.Advance(time.Millisecond)
	require.Len(t, h.messages, 1)
	assert.Contains(t, h.messages[0], "2 movimentos")

	h.sched.Advance(time.Hour)
	assert.Len(t, h.messages, 1)
	for i := range h.engine.Cards() {
		assert.False(t, h.surface.Activate(i))
	}
}

func TestReactivatingFirstCardIsIgnored(t *testing.T) {
	h := newHarness(t, []string{"A", "B"}, 2)

	h.click(0)
	before := h.engine.State()
	h.click(0)

	assert.Equal(t, before, h.engine.State())
	assert.Equal(t, 0, h.engine.State().Moves)
	assert.Equal(t, board.FaceUp, h.card(0).State)
	assert.Equal(t, 0, h.sched.Pending())
}

func TestMismatchRevertsAfterDelay(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 3)
	a, b := h.positions(0), h.positions(1)

	h.click(a[0])
	h.click(b[0])

	st := h.engine.State()
	assert.Equal(t, 1, st.Moves)
	assert.True(t, st.SelectionLocked)
	assert.Equal(t, Resolving, h.engine.Phase())
	assert.Equal(t, board.FaceUp, h.card(a[0]).State)
	assert.Equal(t, board.FaceUp, h.card(b[0]).State)

	// locked: a third card is not revealed
	h.click(a[1])
	assert.Equal(t, board.FaceDown, h.card(a[1]).State)
	assert.Equal(t, 1, h.engine.State().Moves)

	h.sched.Advance(999 * time.Millisecond)
	assert.Equal(t, board.FaceUp, h.card(a[0]).State)

	h.sched.Advance(time.Millisecond)
	st = h.engine.State()
	assert.False(t, st.SelectionLocked)
	assert.Equal(t, Idle, h.engine.Phase())
	assert.Equal(t, 1, st.Moves)
	assert.Equal(t, 0, st.MatchesFound)
	for _, i := range []int{a[0], b[0]} {
		assert.Equal(t, board.FaceDown, h.card(i).State)
		assert.Equal(t, board.FaceDown, h.surface.State(h.card(i).Handle))
		assert.True(t, h.card(i).Enabled)
	}

	// both are selectable again
	h.click(a[0])
	h.click(a[1])
	assert.Equal(t, 2, h.engine.State().Moves)
	assert.Equal(t, 1, h.engine.State().MatchesFound)
}

func TestMatchedCardsStayMatched(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C"}, 4)
	a, b := h.positions(0), h.positions(1)

	h.click(a[0])
	h.click(a[1])
	assert.False(t, h.surface.Activate(a[0]))

	h.click(b[0])
	h.click(a[0])
	h.engine.activate(h.card(a[1]))
	assert.Equal(t, 1, h.engine.State().Moves)
	assert.Equal(t, b[0], h.engine.State().FirstSelected.ID)

	h.click(h.positions(2)[0])
	h.sched.Advance(time.Second)

	for _, i := range a {
		assert.Equal(t, board.Matched, h.card(i).State)
		assert.False(t, h.card(i).Enabled)
		assert.False(t, h.surface.HasHandler(h.card(i).Handle))
	}
}

func TestRestartDropsPendingMismatch(t *testing.T) {
	h := newHarness(t, []string{"A", "B"}, 5)
	a, b := h.positions(0), h.positions(1)
	h.click(a[0])
	h.click(b[0])
	require.Equal(t, 1, h.sched.Pending())

	h.engine.Restart()
	st := h.engine.State()
	assert.Equal(t, TurnState{}, st)
	assert.Equal(t, 0, h.surface.Moves())

	h.click(0)
	h.sched.Advance(time.Second)

	// the old continuation must not unlock, flip or reset the new game
	assert.Equal(t, board.FaceUp, h.card(0).State)
	assert.Equal(t, OneSelected, h.engine.Phase())
	assert.Equal(t, h.card(0), h.engine.State().FirstSelected)
}

func TestRestartDropsPendingWin(t *testing.T) {
	h := newHarness(t, []string{"A"}, 6)
	h.click(0)
	h.click(1)
	require.True(t, h.engine.Won())

	h.engine.Restart()
	h.sched.Advance(time.Second)
	assert.Empty(t, h.messages)
	assert.False(t, h.engine.Won())

	h.click(0)
	h.click(1)
	h.sched.Advance(time.Second)
	require.Len(t, h.messages, 1)
	assert.Contains(t, h.messages[0], "1 movimentos")
}

func TestRestartRebuildsBoard(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D"}, 7)
	old := h.engine.Cards()

	h.engine.Restart()

	require.Len(t, h.engine.Cards(), 8)
	for i, vc := range h.engine.Cards() {
		assert.NotSame(t, old[i], vc)
		assert.Equal(t, board.FaceDown, vc.State)
		assert.True(t, vc.Enabled)
	}
	for _, vc := range old {
		assert.False(t, h.surface.HasHandler(vc.Handle))
	}
	// a handler of the old board is a no-op
	h.engine.activate(old[0])
	assert.Equal(t, Idle, h.engine.Phase())
}

func TestEnglishWinMessage(t *testing.T) {
	var got string
	e := New(board.NewMemorySurface(), &ManualScheduler{}, NotifierFunc(func(m string) { got = m }), Options{
		Faces:    []string{"A"},
		Language: language.English,
		Rand:     deck.NewRand(1),
	})
	e.Start()
	e.activate(e.Cards()[0])
	e.activate(e.Cards()[1])
	assert.Empty(t, got)
	e.sched.(*ManualScheduler).Advance(0)
	assert.Equal(t, "Congratulations! You found all pairs in 1 moves!", got)
}

func TestResolveWithoutSelectionPanics(t *testing.T) {
	h := newHarness(t, []string{"A"}, 8)
	assert.Panics(t, func() { h.engine.resolve() })
}

// Random play never breaks the turn rules.
func TestRandomPlayKeepsTurnRules(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		n := int(seed%8) + 1
		faces := make([]string, n)
		for i := range faces {
			faces[i] = string(rune('a' + i))
		}
		h := newHarness(t, faces, seed)
		rng := rand.New(rand.NewPCG(seed, 0))

		turns := 0
		for step := 0; step < 20000 && len(h.messages) == 0; step++ {
			if rng.IntN(3) == 0 {
				h.sched.Advance(time.Duration(rng.IntN(1200)) * time.Millisecond)
				continue
			}

			before := h.engine.State()
			h.click(rng.IntN(2 * n))
			after := h.engine.State()

			completed := before.FirstSelected != nil && !before.SelectionLocked &&
				after.Moves != before.Moves
			if completed {
				turns++
			}
			require.Contains(t, []int{before.Moves, before.Moves + 1}, after.Moves)
			require.Equal(t, turns, after.Moves)
			if before.FirstSelected == nil || before.SelectionLocked {
				require.Equal(t, before.Moves, after.Moves)
			}

			up := 0
			for _, vc := range h.engine.Cards() {
				if vc.State == board.FaceUp {
					up++
				}
			}
			require.LessOrEqual(t, up, 2)
			require.LessOrEqual(t, after.MatchesFound, n)
			if h.engine.Won() {
				h.sched.Advance(time.Second)
			}
		}

		require.Len(t, h.messages, 1, "seed %d", seed)
		assert.Equal(t, WinMessage(DefaultLanguage, h.engine.State().Moves), h.messages[0])
		assert.Equal(t, n, h.engine.State().MatchesFound)
		h.sched.Advance(time.Hour)
		assert.Len(t, h.messages, 1)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "one-selected", OneSelected.String())
	assert.Equal(t, "resolving", Resolving.String())
	assert.Equal(t, "unknown", Phase(7).String())
}
