package format

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"lbrk/internal/config"
	"lbrk/internal/trace"
)

func wrapConfig(width int, mode config.Justification) config.Config {
	return config.Config{Width: width, Justify: mode}
}

func mustNew(t *testing.T, cfg config.Config, opts ...Option) *Formatter {
	t.Helper()
	f, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New(%+v) failed: %v", cfg, err)
	}
	return f
}

func TestNew_Validates(t *testing.T) {
	_, err := New(config.Config{Width: 10, Upper: true, Lower: true})
	if !errors.Is(err, config.ErrCaseConflict) {
		t.Errorf("expected case conflict, got %v", err)
	}

	_, err = New(config.Config{Width: 10, BreakWords: true, Justify: config.JustifyLeft})
	if !errors.Is(err, config.ErrJustifyBreak) {
		t.Errorf("expected justify/break conflict, got %v", err)
	}

	var cerr *config.ConfigError
	if _, err := New(config.Config{Width: 0, BreakWords: true}); !errors.As(err, &cerr) {
		t.Errorf("expected ConfigError for zero width, got %v", err)
	}
}

func TestNew_DefaultsToLeftWithoutMutatingCaller(t *testing.T) {
	cfg := config.Config{Width: 10}
	f := mustNew(t, cfg)

	if f.Config().Justify != config.JustifyLeft {
		t.Errorf("expected left justification, got %s", f.Config().Justify)
	}
	if cfg.Justify != config.JustifyNone {
		t.Error("caller's config should not be modified")
	}
}

func TestProcess_Examples(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		in   string
		want []string
	}{
		{
			name: "left",
			cfg:  wrapConfig(10, config.JustifyLeft),
			in:   "the quick brown fox",
			want: []string{"the quick ", "brown fox "},
		},
		{
			name: "center",
			cfg:  wrapConfig(10, config.JustifyCenter),
			in:   "the quick brown fox",
			want: []string{"the  quick", "brown  fox"},
		},
		{
			name: "right",
			cfg:  wrapConfig(10, config.JustifyRight),
			in:   "the quick brown fox",
			want: []string{" the quick", " brown fox"},
		},
		{
			name: "over-long word",
			cfg:  wrapConfig(10, config.JustifyLeft),
			in:   "supercalifragilisticexpialidocious",
			want: []string{"supercalif", "ragilistic", "expialidoc", "ious      "},
		},
		{
			name: "over-long word tail is its own line",
			cfg:  wrapConfig(10, config.JustifyLeft),
			in:   "abcdefghijkl xy",
			want: []string{"abcdefghij", "kl        ", "xy        "},
		},
		{
			name: "over-long word tail centered alone",
			cfg:  wrapConfig(10, config.JustifyCenter),
			in:   "abcdefghijkl xy z",
			want: []string{"abcdefghij", "kl        ", "xy       z"},
		},
		{
			name: "respect words at width 5",
			cfg:  config.Config{Width: 5},
			in:   "abcdefghij",
			want: []string{"abcde", "fghij"},
		},
		{
			name: "break words at width 5",
			cfg:  config.Config{Width: 5, BreakWords: true},
			in:   "abcdefghij",
			want: []string{"abcde", "fghij"},
		},
		{
			name: "empty input",
			cfg:  wrapConfig(10, config.JustifyLeft),
			in:   "",
			want: nil,
		},
		{
			name: "whitespace only",
			cfg:  wrapConfig(10, config.JustifyCenter),
			in:   " \t \n",
			want: nil,
		},
		{
			name: "endings marker",
			cfg:  config.Config{Width: 10, Justify: config.JustifyLeft, ShowEndings: true},
			in:   "the quick brown fox",
			want: []string{"the quick <|", "brown fox <|"},
		},
		{
			name: "break mode ignores endings",
			cfg:  config.Config{Width: 5, BreakWords: true, ShowEndings: true},
			in:   "abcdefghij",
			want: []string{"abcde", "fghij"},
		},
		{
			name: "case and tabs",
			cfg:  config.Config{Width: 3, BreakWords: true, ConvertTabs: true, Upper: true},
			in:   "a\tbcd",
			want: []string{"A B", "CD"},
		},
		{
			name: "tabs kept without conversion",
			cfg:  config.Config{Width: 3, BreakWords: true, Lower: true},
			in:   "A\tB",
			want: []string{"a\tb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustNew(t, tt.cfg)
			got := f.Process(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Process(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

const paragraph = "It was the best of times, it was the worst of times, it was the age " +
	"of wisdom, it was the age of foolishness, it was the epoch of belief, " +
	"it was the epoch of incredulity, it was the season of Light."

func TestProcess_WrappedLinesHaveExactWidth(t *testing.T) {
	modes := []config.Justification{config.JustifyLeft, config.JustifyRight, config.JustifyCenter}

	for _, mode := range modes {
		for width := 1; width <= 40; width++ {
			f := mustNew(t, wrapConfig(width, mode))
			lines := f.Process(paragraph)
			if len(lines) == 0 {
				t.Fatalf("%s/%d: no output", mode, width)
			}
			for _, line := range lines {
				if n := utf8.RuneCountInString(line); n != width {
					t.Errorf("%s/%d: line %q has length %d", mode, width, line, n)
				}
			}
		}
	}
}

func TestProcess_BreakModeChunkWidths(t *testing.T) {
	for width := 1; width <= 40; width++ {
		f := mustNew(t, config.Config{Width: width, BreakWords: true})
		lines := f.Process(paragraph)
		for i, line := range lines {
			n := utf8.RuneCountInString(line)
			if i < len(lines)-1 && n != width {
				t.Errorf("width %d: line %d has length %d", width, i, n)
			}
			if i == len(lines)-1 && (n == 0 || n > width) {
				t.Errorf("width %d: last line has length %d", width, n)
			}
		}
		if got := strings.Join(lines, ""); got != paragraph {
			t.Errorf("width %d: chunks do not reassemble the input", width)
		}
	}
}

func TestProcess_LeftIsIdempotent(t *testing.T) {
	f := mustNew(t, wrapConfig(12, config.JustifyLeft))

	first := f.Process("the quick brown fox jumps over the lazy dog")
	want := []string{"the quick   ", "brown fox   ", "jumps over  ", "the lazy dog"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("first pass = %q, want %q", first, want)
	}

	second := f.Process(strings.Join(first, "\n"))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass = %q, want %q", second, first)
	}

	// A chunked word leaves a short tail line that a second pass would
	// refill, so only widths that fit every word are stable.
	longest := 0
	for _, w := range Tokenize(paragraph) {
		longest = max(longest, utf8.RuneCountInString(w))
	}
	for width := longest; width <= 40; width++ {
		f := mustNew(t, wrapConfig(width, config.JustifyLeft))
		once := f.Process(paragraph)
		twice := f.Process(strings.Join(once, "\n"))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("width %d: output not stable", width)
		}
	}
}

func TestProcess_IndependentFormatters(t *testing.T) {
	narrow := mustNew(t, wrapConfig(10, config.JustifyLeft))
	wide := mustNew(t, config.Config{Width: 20, Justify: config.JustifyRight, Upper: true})

	if got := narrow.Process("the quick brown fox"); len(got) != 2 {
		t.Errorf("narrow: got %q", got)
	}
	if got := wide.Process("the quick brown fox"); !reflect.DeepEqual(got, []string{" THE QUICK BROWN FOX"}) {
		t.Errorf("wide: got %q", got)
	}
}

func TestRender_UnknownJustificationDegrades(t *testing.T) {
	var diag bytes.Buffer
	cfg := config.Config{Width: 10, ShowEndings: true}
	f := &Formatter{
		cfg:    cfg,
		pre:    NewPreprocessor(cfg),
		tracer: trace.New(&diag, false),
	}

	got := f.Process("the quick brown fox")
	want := []string{"<|", "<|"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if !strings.Contains(diag.String(), "unknown justification policy") {
		t.Errorf("expected diagnostic, got %q", diag.String())
	}
}

func TestRun_GranularityByMode(t *testing.T) {
	input := "the quick\nbrown fox\n"

	tests := []struct {
		mode Mode
		want string
	}{
		{FileBatch, "the quick brown fox \n"},
		{LineStream, "the quick           \nbrown fox           \n"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f := mustNew(t, wrapConfig(20, config.JustifyLeft))

			var out bytes.Buffer
			if err := f.Run(strings.NewReader(input), &out, tt.mode); err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("got %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun_BreakModeFileKeepsNewlines(t *testing.T) {
	f := mustNew(t, config.Config{Width: 5, BreakWords: true})

	var out bytes.Buffer
	if err := f.Run(strings.NewReader("abc\ndefg\n"), &out, FileBatch); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := "abc\nd\nefg\n\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRun_LineStreamBreakMode(t *testing.T) {
	f := mustNew(t, config.Config{Width: 5, BreakWords: true, ConvertTabs: true})

	var out bytes.Buffer
	if err := f.Run(strings.NewReader("abcdefg\nh\ti\r\n\nlast"), &out, LineStream); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := "abcde\nfg\nh i\nlast\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	for _, mode := range []Mode{FileBatch, LineStream} {
		f := mustNew(t, wrapConfig(10, config.JustifyLeft))

		var out bytes.Buffer
		if err := f.Run(strings.NewReader(""), &out, mode); err != nil {
			t.Fatalf("%s: Run failed: %v", mode, err)
		}
		if out.Len() != 0 {
			t.Errorf("%s: expected no output, got %q", mode, out.String())
		}
	}
}

func TestRun_UnsupportedMode(t *testing.T) {
	f := mustNew(t, wrapConfig(10, config.JustifyLeft))
	if err := f.Run(strings.NewReader("x"), &bytes.Buffer{}, Mode(7)); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRun_DebugTrace(t *testing.T) {
	var diag bytes.Buffer
	f := mustNew(t, wrapConfig(10, config.JustifyLeft), WithTracer(trace.New(&diag, true)))

	if err := f.Run(strings.NewReader("one\ntwo\n"), &bytes.Buffer{}, LineStream); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := diag.String()
	for _, want := range []string{"line-stream", "unit 2", "done: 2 units, 2 lines"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in trace, got %q", want, out)
		}
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("the quick\nbrown fox\n"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	f := mustNew(t, wrapConfig(10, config.JustifyCenter))

	var out bytes.Buffer
	if err := f.RunFile(path, &out); err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	if want := "the  quick\nbrown  fox\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRunFile_Directory(t *testing.T) {
	f := mustNew(t, wrapConfig(10, config.JustifyLeft))

	var out bytes.Buffer
	err := f.RunFile(t.TempDir(), &out)

	var oerr *OpenError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunFile_Missing(t *testing.T) {
	f := mustNew(t, wrapConfig(10, config.JustifyLeft))

	err := f.RunFile(filepath.Join(t.TempDir(), "missing.txt"), &bytes.Buffer{})

	var oerr *OpenError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist in chain, got %v", err)
	}
}
