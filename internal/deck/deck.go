package deck

import (
	"math/rand/v2"

	"github.com/arcanaland/concentration/internal/card"
)

// Deck is an ordered sequence of 2N cards, two per pair id
type Deck []card.Card

// Build creates a deck with two cards for every face and shuffles it.
// The pair id of a card is the index of its face.
func Build(faces []string, rng *rand.Rand) Deck {
	d := Pairs(faces)
	Shuffle(d, rng)
	return d
}

// Pairs creates the unshuffled deck: [f0, f0, f1, f1, ...]
func Pairs(faces []string) Deck {
	d := make(Deck, 0, len(faces)*2)
	for i, face := range faces {
		d = append(d, card.Card{PairID: i, Image: face})
		d = append(d, card.Card{PairID: i, Image: face})
	}
	return d
}

// Shuffle permutes the deck in place with Fisher-Yates
func Shuffle(d Deck, rng *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// NumPairs returns N for a deck of 2N cards
func (d Deck) NumPairs() int {
	return len(d) / 2
}

// NewRand returns a random source. A zero seed means a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
