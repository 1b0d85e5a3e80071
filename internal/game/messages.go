package game

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	winMessage   = "Congratulations! You found all pairs in %d moves!"
	movesMessage = "Moves: %d"
)

func init() {
	message.SetString(language.BrazilianPortuguese, winMessage,
		"Parabéns! Você encontrou todos os pares em %d movimentos!")
	message.SetString(language.BrazilianPortuguese, movesMessage, "Movimentos: %d")
}

// DefaultLanguage is used when no language is configured
var DefaultLanguage = language.BrazilianPortuguese

// SupportedLanguages lists the languages the win message is translated to
var SupportedLanguages = []language.Tag{language.BrazilianPortuguese, language.English}

// ParseLanguage parses a configured language tag and matches it against the
// supported languages.
func ParseLanguage(s string) (language.Tag, error) {
	if s == "" {
		return DefaultLanguage, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, idx, conf := language.NewMatcher(SupportedLanguages).Match(tag)
	if conf == language.No {
		return language.Und, fmt.Errorf("unsupported language: %s", s)
	}
	return SupportedLanguages[idx], nil
}

// WinMessage formats the end-of-game message
func WinMessage(tag language.Tag, moves int) string {
	return message.NewPrinter(tag).Sprintf(winMessage, moves)
}

// MovesLabel formats the move counter shown next to the board
func MovesLabel(tag language.Tag, moves int) string {
	return message.NewPrinter(tag).Sprintf(movesMessage, moves)
}
