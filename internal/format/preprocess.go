package format

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"lbrk/internal/config"
)

// MapRune applies the configured tab and case policy to a single character.
func MapRune(cfg config.Config, r rune) rune {
	if unicode.IsSpace(r) {
		if r == '\t' && cfg.ConvertTabs {
			return ' '
		}
		return r
	}

	switch {
	case cfg.Upper:
		return unicode.ToUpper(r)
	case cfg.Lower:
		return unicode.ToLower(r)
	}
	return r
}

// NewPreprocessor returns a transformer applying MapRune to every character.
// It carries no state between characters, so one instance can serve any
// number of strings and readers.
func NewPreprocessor(cfg config.Config) transform.Transformer {
	return runes.Map(func(r rune) rune {
		return MapRune(cfg, r)
	})
}

// Tokenize splits text into words on runs of whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}
