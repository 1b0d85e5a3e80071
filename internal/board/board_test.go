package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/concentration/internal/deck"
)

func TestRenderKeepsDeckOrder(t *testing.T) {
	s := NewMemorySurface()
	r := NewRenderer(s, "back.png")
	d := deck.Deck{{PairID: 1, Image: "b"}, {PairID: 0, Image: "a"}, {PairID: 1, Image: "b"}, {PairID: 0, Image: "a"}}

	cards := r.Render(d, func(*VisualCard) {})

	require.Len(t, cards, 4)
	handles := s.Cards()
	require.Len(t, handles, 4)
	for i, vc := range cards {
		assert.Equal(t, i, vc.ID)
		assert.Equal(t, d[i].PairID, vc.PairID)
		assert.Equal(t, handles[i], vc.Handle)
		assert.Equal(t, FaceDown, vc.State)
		assert.True(t, vc.Enabled)
		assert.Equal(t, FaceDown, s.State(vc.Handle))
		assert.Equal(t, d[i].Image, s.Image(vc.Handle, KindFrontFace))
		assert.Equal(t, "back.png", s.Image(vc.Handle, KindBackFace))
		assert.True(t, s.HasHandler(vc.Handle))
	}
}

func TestRenderClearsPreviousBoard(t *testing.T) {
	s := NewMemorySurface()
	r := NewRenderer(s, "back")
	d := deck.Pairs([]string{"a", "b", "c"})

	old := r.Render(d, func(*VisualCard) {})
	cards := r.Render(d, func(*VisualCard) {})

	assert.Len(t, s.Cards(), 6)
	// root + 3 elements per card
	assert.Equal(t, 1+3*6, s.Elements())
	for _, vc := range old {
		assert.False(t, s.HasHandler(vc.Handle))
	}
	for _, vc := range cards {
		assert.True(t, s.HasHandler(vc.Handle))
	}
}

func TestActivationPassesBoundCard(t *testing.T) {
	s := NewMemorySurface()
	r := NewRenderer(s, "back")

	var got []*VisualCard
	cards := r.Render(deck.Pairs([]string{"a", "b"}), func(vc *VisualCard) { got = append(got, vc) })

	assert.True(t, s.Activate(2))
	assert.True(t, s.Activate(0))
	assert.False(t, s.Activate(9))
	assert.Equal(t, []*VisualCard{cards[2], cards[0]}, got)
}

func TestDisableRemovesHandler(t *testing.T) {
	s := NewMemorySurface()
	r := NewRenderer(s, "back")
	calls := 0
	cards := r.Render(deck.Pairs([]string{"a"}), func(*VisualCard) { calls++ })

	r.Disable(cards[0])
	r.SetState(cards[0], Matched)

	assert.False(t, cards[0].Enabled)
	assert.False(t, s.Activate(0))
	assert.True(t, s.Activate(1))
	assert.Equal(t, 1, calls)
	assert.Equal(t, Matched, s.State(cards[0].Handle))
}

func TestVisualStateString(t *testing.T) {
	assert.Equal(t, "face-down", FaceDown.String())
	assert.Equal(t, "face-up", FaceUp.String())
	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "unknown", VisualState(9).String())
}
