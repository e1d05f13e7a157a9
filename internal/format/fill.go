package format

import (
	"strings"
	"unicode/utf8"
)

// FillWords greedily packs words into lines of at most width characters,
// separated by single spaces. A word longer than width is split into
// fixed-width chunks, each emitted as a line of its own, and filling resumes
// on a fresh line after the last chunk.
func FillWords(words []string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	flush := func() {
		if currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
	}

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)

		// If word is longer than width, break it
		if wordLen > width {
			flush()
			lines = append(lines, FillWidth(word, width)...)
			continue
		}

		// Check if word fits on current line
		if currentWidth == 0 {
			currentLine.WriteString(word)
			currentWidth = wordLen
		} else if currentWidth+1+wordLen <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
			currentWidth += 1 + wordLen
		} else {
			// Word doesn't fit, start new line
			flush()
			currentLine.WriteString(word)
			currentWidth = wordLen
		}
	}

	// Flush remaining content
	flush()

	return lines
}

// FillWidth slices text into consecutive chunks of exactly width characters.
// Whitespace is kept as-is and the final chunk may be shorter.
func FillWidth(text string, width int) []string {
	if width <= 0 || text == "" {
		return nil
	}

	runes := []rune(text)
	lines := make([]string, 0, (len(runes)+width-1)/width)
	for start := 0; start < len(runes); start += width {
		end := min(start+width, len(runes))
		lines = append(lines, string(runes[start:end]))
	}

	return lines
}
