package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lbrk/internal/config"
)

// ErrUnknownJustification is wrapped by InternalError when a line reaches
// the justifier without a usable mode.
var ErrUnknownJustification = errors.New("unknown justification policy")

// InternalError reports a state that validation should have made unreachable.
type InternalError struct {
	Justify config.Justification
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal: %v %q", ErrUnknownJustification, e.Justify.String())
}

func (e *InternalError) Unwrap() error {
	return ErrUnknownJustification
}

// Pad stretches line to exactly width characters using mode.
// Lines already at or beyond width are returned unchanged.
func Pad(line string, width int, mode config.Justification) (string, error) {
	length := utf8.RuneCountInString(line)
	if length >= width {
		return line, nil
	}

	switch mode {
	case config.JustifyLeft:
		return line + strings.Repeat(" ", width-length), nil
	case config.JustifyRight:
		return strings.Repeat(" ", width-length) + line, nil
	case config.JustifyCenter:
		return center(line, width), nil
	default:
		return "", &InternalError{Justify: mode}
	}
}

func center(line string, width int) string {
	words := Tokenize(line)
	if len(words) == 0 {
		return strings.Repeat(" ", width)
	}

	nonspace := 0
	for _, w := range words {
		nonspace += utf8.RuneCountInString(w)
	}
	diff := width - nonspace

	if len(words) == 1 {
		return words[0] + strings.Repeat(" ", diff)
	}
	return JoinGaps(words, GapSpaces(len(words)-1, diff))
}

// GapSpaces splits extra spaces across gaps inter-word slots. Every gap gets
// extra/gaps spaces; the remainder is handed out one at a time from alternate
// ends moving inward (gap 0, last gap, gap 1, second to last, ...).
func GapSpaces(gaps, extra int) []int {
	if gaps <= 0 {
		return nil
	}

	spaces := make([]int, gaps)
	base, rem := extra/gaps, extra%gaps
	for i := range spaces {
		spaces[i] = base
	}

	lo, hi := 0, gaps-1
	for k := 0; k < rem; k++ {
		if k%2 == 0 {
			spaces[lo]++
			lo++
		} else {
			spaces[hi]++
			hi--
		}
	}

	return spaces
}

// JoinGaps rebuilds a line from words, placing spaces[i] spaces between
// words[i] and words[i+1].
func JoinGaps(words []string, spaces []int) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", spaces[i-1]))
		}
		b.WriteString(w)
	}
	return b.String()
}
