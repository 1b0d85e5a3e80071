package card

// Card represents one card of a memory deck
type Card struct {
	PairID int    // Matching key, shared by exactly two cards
	Image  string // Front face identifier (file path or glyph)
}
