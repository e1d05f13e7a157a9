// Package format implements lbrk's line filling and justification.
//
// A Formatter is built from a validated config.Config and turns raw text into
// lines of a fixed or bounded width. Text passes through four stages:
//
//   - preprocessing: tab conversion and case folding, one character at a time
//   - filling: word-wrap (BreakWords off) or fixed-width chunking (BreakWords on)
//   - justification: left, right or center padding, word-wrap mode only
//   - emission: optional ending marker, one line per output line
//
// Input is consumed either as one unit (FileBatch) or one physical line at a
// time (LineStream); the choice is made by the caller through Mode.
package format

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"lbrk/internal/config"
	"lbrk/internal/trace"
)

// Mode selects the unit of input that is wrapped as one flow of words.
type Mode int

const (
	// FileBatch treats the whole input as a single unit.
	FileBatch Mode = iota
	// LineStream wraps every input line on its own.
	LineStream
)

func (m Mode) String() string {
	switch m {
	case FileBatch:
		return "file-batch"
	case LineStream:
		return "line-stream"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// OpenError reports an input file that could not be opened or read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("could not open file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Formatter wraps and justifies text according to a fixed configuration.
// It holds no mutable state and may be shared.
type Formatter struct {
	cfg    config.Config
	pre    transform.Transformer
	tracer *trace.Tracer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithTracer sets the diagnostic channel. Without it diagnostics are dropped.
func WithTracer(t *trace.Tracer) Option {
	return func(f *Formatter) {
		f.tracer = t
	}
}

// New validates cfg and returns a Formatter for it. The caller's value is
// not modified; the validated copy is available through Config.
func New(cfg config.Config, opts ...Option) (*Formatter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Formatter{
		cfg:    cfg,
		pre:    NewPreprocessor(cfg),
		tracer: trace.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Config returns the validated configuration.
func (f *Formatter) Config() config.Config {
	return f.cfg
}

// Process formats one unit of raw text and returns the rendered lines
// without trailing newlines.
func (f *Formatter) Process(text string) []string {
	pre, _, err := transform.String(f.pre, text)
	if err != nil {
		// runes.Map never fails on in-memory input; keep the raw text.
		f.tracer.Errorf("preprocess: %v", err)
		pre = text
	}
	return f.render(pre)
}

// render fills and justifies already preprocessed text.
func (f *Formatter) render(text string) []string {
	width := f.cfg.Width

	if f.cfg.BreakWords {
		return FillWidth(text, width)
	}

	lines := FillWords(Tokenize(text), width)
	for i, line := range lines {
		padded, err := Pad(line, width, f.cfg.Justify)
		if err != nil {
			f.tracer.Errorf("%v, returning empty line", err)
			padded = ""
		}
		if f.cfg.ShowEndings {
			padded += config.EndingMarker
		}
		lines[i] = padded
	}
	return lines
}

// Run reads r in the given mode and writes every rendered line to w,
// each followed by a newline.
func (f *Formatter) Run(r io.Reader, w io.Writer, mode Mode) error {
	src := transform.NewReader(r, f.pre)
	out := bufio.NewWriter(w)

	f.tracer.Debugf("parsing input as %s (width=%d justify=%s break_words=%t)",
		mode, f.cfg.Width, f.cfg.Justify, f.cfg.BreakWords)

	var units, emitted int
	emit := func(text string) error {
		units++
		lines := f.render(text)
		f.tracer.Debugf("unit %d: %d chars -> %d lines", units, utf8.RuneCountInString(text), len(lines))
		for _, line := range lines {
			if _, err := out.WriteString(line); err != nil {
				return err
			}
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}
		emitted += len(lines)
		return nil
	}

	switch mode {
	case FileBatch:
		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := emit(string(data)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

	case LineStream:
		br := bufio.NewReader(src)
		for {
			line, err := br.ReadString('\n')
			if len(line) > 0 {
				line = strings.TrimSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\r")
				if werr := emit(line); werr != nil {
					return fmt.Errorf("write output: %w", werr)
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
		}

	default:
		return fmt.Errorf("unsupported input mode %s", mode)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	f.tracer.Debugf("done: %d units, %d lines", units, emitted)
	return nil
}

// RunFile formats the file at path as a single FileBatch unit. Any failure
// to read the file, directories included, is reported as an OpenError.
func (f *Formatter) RunFile(path string, w io.Writer) error {
	f.tracer.Debugf("reading file %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	return f.Run(bytes.NewReader(data), w, FileBatch)
}
