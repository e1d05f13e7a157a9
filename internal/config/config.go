// Package config handles lbrk configuration loading, validation and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version is the current lbrk version.
const Version = "0.1.0"

const (
	// DefaultWidth is the line width used when none is configured.
	DefaultWidth = 80

	// EndingMarker is appended to each justified line when ShowEndings is set.
	EndingMarker = "<|"

	envConfigPath = "LBRK_CONFIG"
)

// Justification is the padding strategy applied to wrapped lines.
type Justification string

const (
	JustifyNone   Justification = ""
	JustifyLeft   Justification = "left"
	JustifyRight  Justification = "right"
	JustifyCenter Justification = "center"
)

// ParseJustification converts a user-supplied mode name.
func ParseJustification(s string) (Justification, error) {
	switch j := Justification(strings.ToLower(strings.TrimSpace(s))); j {
	case JustifyLeft, JustifyRight, JustifyCenter:
		return j, nil
	default:
		return JustifyNone, fmt.Errorf("invalid justification mode %q", s)
	}
}

// Valid reports whether j is a known mode (including None).
func (j Justification) Valid() bool {
	switch j {
	case JustifyNone, JustifyLeft, JustifyRight, JustifyCenter:
		return true
	}
	return false
}

func (j Justification) String() string {
	if j == JustifyNone {
		return "none"
	}
	return string(j)
}

// ConfigError reports a configuration that cannot be used for formatting.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

var (
	// ErrCaseConflict is returned when both case conversions are enabled.
	ErrCaseConflict = &ConfigError{Reason: "uppercase and lowercase both enabled"}

	// ErrJustifyBreak is returned when a justification is combined with word-breaking mode.
	ErrJustifyBreak = &ConfigError{Reason: "justification incompatible with word-breaking mode"}
)

// Config represents the lbrk configuration.
type Config struct {
	// Width is the target line length in characters.
	Width int `yaml:"width"`

	// Justify selects left, right or center padding of wrapped lines.
	Justify Justification `yaml:"justify"`

	// BreakWords slices input into exact-width chunks, ignoring word boundaries.
	BreakWords bool `yaml:"break_words"`

	// ConvertTabs replaces each tab with a single space.
	ConvertTabs bool `yaml:"convert_tabs"`

	Upper bool `yaml:"upper"`
	Lower bool `yaml:"lower"`

	// ShowEndings appends EndingMarker to each wrapped line.
	ShowEndings bool `yaml:"show_endings"`

	// Debug enables the diagnostic trace on stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Justify:    JustifyNone,
		BreakWords: true,
	}
}

// Validate checks the configuration and fills in the default justification
// for word-wrap mode. It must be called before any text is processed.
func (c *Config) Validate() error {
	if c.Upper && c.Lower {
		return ErrCaseConflict
	}
	if !c.Justify.Valid() {
		return &ConfigError{Reason: fmt.Sprintf("unknown justification mode %q", string(c.Justify))}
	}
	if c.Justify != JustifyNone && c.BreakWords {
		return ErrJustifyBreak
	}
	if c.Width <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("width must be positive, got %d", c.Width)}
	}

	if !c.BreakWords && c.Justify == JustifyNone {
		c.Justify = JustifyLeft
	}
	return nil
}

// DefaultPath returns the config file location, preferring an existing file.
func DefaultPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}

	homeDir, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(homeDir, ".lbrk", "config.yaml"),
		filepath.Join(homeDir, ".config", "lbrk", "config.yaml"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	// Default path (will be created if needed)
	return candidates[0]
}

// Load reads configuration from file, merging with defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // No config file, use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to file.
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Keys lists the setting names accepted by Get and Set, in display order.
var Keys = []string{
	"width",
	"justify",
	"break_words",
	"convert_tabs",
	"upper",
	"lower",
	"show_endings",
	"debug",
}

// Get returns a setting value by key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "width":
		return strconv.Itoa(c.Width), nil
	case "justify":
		return c.Justify.String(), nil
	case "break_words":
		return strconv.FormatBool(c.BreakWords), nil
	case "convert_tabs":
		return strconv.FormatBool(c.ConvertTabs), nil
	case "upper":
		return strconv.FormatBool(c.Upper), nil
	case "lower":
		return strconv.FormatBool(c.Lower), nil
	case "show_endings":
		return strconv.FormatBool(c.ShowEndings), nil
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	default:
		return "", fmt.Errorf("unknown setting: %s", key)
	}
}

// Set updates a setting value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s (expected integer)", key, value)
		}
		if n <= 0 {
			return fmt.Errorf("invalid value for %s: %d (must be positive)", key, n)
		}
		c.Width = n
	case "justify":
		if v := strings.ToLower(value); v == "none" || v == "" {
			c.Justify = JustifyNone
			return nil
		}
		j, err := ParseJustification(value)
		if err != nil {
			return err
		}
		c.Justify = j
	case "break_words", "convert_tabs", "upper", "lower", "show_endings", "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s (expected true/false)", key, value)
		}
		*c.boolField(key) = b
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}

func (c *Config) boolField(key string) *bool {
	switch key {
	case "break_words":
		return &c.BreakWords
	case "convert_tabs":
		return &c.ConvertTabs
	case "upper":
		return &c.Upper
	case "lower":
		return &c.Lower
	case "show_endings":
		return &c.ShowEndings
	default:
		return &c.Debug
	}
}
