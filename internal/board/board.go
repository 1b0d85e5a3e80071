package board

import (
	"github.com/arcanaland/concentration/internal/deck"
)

// VisualCard is a rendered card bound to one Card of the deck
type VisualCard struct {
	ID      int // Position on the board, stable for the game
	PairID  int
	Image   string
	Handle  Handle
	State   VisualState
	Enabled bool // Accepts activation
}

// Renderer materializes decks on a Surface
type Renderer struct {
	surface Surface
	back    string
}

// NewRenderer creates a renderer using back as the shared back face
func NewRenderer(surface Surface, back string) *Renderer {
	return &Renderer{surface: surface, back: back}
}

// Render clears the board and creates one face-down VisualCard per card, in
// deck order. onActivate is registered as the activation handler of each card.
func (r *Renderer) Render(d deck.Deck, onActivate func(*VisualCard)) []*VisualCard {
	root := r.surface.Root()
	r.surface.Clear(root)

	cards := make([]*VisualCard, 0, len(d))
	for i, c := range d {
		h := r.surface.CreateElement(KindCard, "")
		front := r.surface.CreateElement(KindFrontFace, c.Image)
		back := r.surface.CreateElement(KindBackFace, r.back)
		r.surface.AppendChild(h, front)
		r.surface.AppendChild(h, back)

		vc := &VisualCard{
			ID:      i,
			PairID:  c.PairID,
			Image:   c.Image,
			Handle:  h,
			State:   FaceDown,
			Enabled: true,
		}
		r.surface.SetVisualState(h, FaceDown)
		r.surface.RegisterActivationHandler(h, func() { onActivate(vc) })
		r.surface.AppendChild(root, h)

		cards = append(cards, vc)
	}

	return cards
}

// SetState changes the visual state of a card
func (r *Renderer) SetState(vc *VisualCard, state VisualState) {
	vc.State = state
	r.surface.SetVisualState(vc.Handle, state)
}

// Disable makes a card permanently inert
func (r *Renderer) Disable(vc *VisualCard) {
	vc.Enabled = false
	r.surface.UnregisterActivationHandler(vc.Handle)
}

// SetMoves shows the move counter
func (r *Renderer) SetMoves(moves int) {
	r.surface.SetMoves(moves)
}
