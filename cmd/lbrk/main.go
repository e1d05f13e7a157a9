// Command lbrk breaks text lines to a fixed width and optionally justifies them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lbrk/internal/config"
	"lbrk/internal/format"
	"lbrk/internal/styles"
	"lbrk/internal/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the streams and flag values for one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string

	debug        bool
	endings      bool
	justify      string
	lower        bool
	upper        bool
	tabs         bool
	respectWords bool
	width        int
}

// usageError is a command-line mistake; the usage text is printed with it.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	rootCmd := a.rootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	st := styles.New(stderr)
	fmt.Fprintf(stderr, "%s %v\n", st.Error.Render("Error:"), err)

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, uerr.cmd.UsageString())
	}

	return exitCode(err)
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var oerr *format.OpenError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &oerr):
		return 2
	default:
		return 1
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lbrk [flags] [file]",
		Short: "Line-breaker - break text lines in a visually nice way",
		Long: `lbrk reads text from a file, or line by line from standard input, and
prints it broken into lines of a fixed width.

By default words are cut at exactly the given width. With -r words are kept
whole and every line is justified (left unless -j says otherwise).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &usageError{cmd: cmd, err: err}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: a.runFormat,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{cmd: c, err: err}
	})

	flags := cmd.Flags()
	flags.BoolVarP(&a.debug, "debug", "d", false, "Set debug")
	flags.BoolVarP(&a.endings, "endings", "e", false, "Show line endings with a "+config.EndingMarker+" delimiter")
	flags.StringVarP(&a.justify, "justify", "j", "", "Justify text to: left, right, center")
	flags.BoolVarP(&a.lower, "lower", "l", false, "Convert text to lowercase")
	flags.BoolVarP(&a.respectWords, "respect-words", "r", false, "Don't break words, respect them")
	flags.BoolVarP(&a.tabs, "tabs", "t", false, "Convert tabs to spaces")
	flags.BoolVarP(&a.upper, "upper", "u", false, "Convert text to uppercase")
	flags.IntVarP(&a.width, "width", "w", config.DefaultWidth, "Width of text after breaking lines")

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $LBRK_CONFIG or ~/.lbrk/config.yaml)")

	cmd.AddCommand(
		a.versionCmd(),
		a.settingsCmd(),
	)

	return cmd
}

func (a *app) runFormat(cmd *cobra.Command, args []string) error {
	cfg, _, err := a.loadConfig()
	if err != nil {
		return err
	}

	if err := a.applyFlags(cmd, cfg); err != nil {
		return err
	}

	tracer := trace.New(a.stderr, cfg.Debug)
	f, err := format.New(*cfg, format.WithTracer(tracer))
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] != "-" {
		return f.RunFile(args[0], a.stdout)
	}

	tracer.Debugf("Parsing from stdin")
	return f.Run(a.stdin, a.stdout, format.LineStream)
}

// applyFlags overlays explicitly set flags on the loaded configuration.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("justify") {
		j, err := config.ParseJustification(a.justify)
		if err != nil {
			return &usageError{cmd: cmd, err: err}
		}
		cfg.Justify = j
	}
	if flags.Changed("width") {
		cfg.Width = a.width
	}
	if flags.Changed("respect-words") {
		cfg.BreakWords = !a.respectWords
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("endings") {
		cfg.ShowEndings = a.endings
	}
	if flags.Changed("lower") {
		cfg.Lower = a.lower
	}
	if flags.Changed("upper") {
		cfg.Upper = a.upper
	}
	if flags.Changed("tabs") {
		cfg.ConvertTabs = a.tabs
	}

	return nil
}

func (a *app) loadConfig() (*config.Config, string, error) {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "lbrk version %s\n", config.Version)
		},
	}
}

// Settings command

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Short:   "View and modify lbrk settings",
		Aliases: []string{"config"},
	}

	cmd.AddCommand(
		a.settingsListCmd(),
		a.settingsGetCmd(),
		a.settingsSetCmd(),
		a.settingsPathCmd(),
	)

	return cmd
}

func (a *app) settingsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Long:  "Show the config file path. The file is not read, so this works even when it is malformed.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path := a.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Fprintln(a.stdout, path)
		},
	}
}

func (a *app) settingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all settings with their current values",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}

			st := styles.New(a.stdout)
			fmt.Fprintln(a.stdout, st.Title.Render("Current settings:"))
			for _, key := range config.Keys {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "  %s = %s\n", st.Key.Render(fmt.Sprintf("%-12s", key)), st.Value.Render(value))
			}
			return nil
		},
	}
}

func (a *app) settingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}

			value, err := cfg.Get(strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, value)
			return nil
		},
	}
}

func (a *app) settingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting value",
		Long: `Set a configuration value. Changes are saved to the config file.

Examples:
  lbrk settings set width 72
  lbrk settings set break_words false
  lbrk settings set justify center
  lbrk settings set show_endings true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value := args[1]
			if err := cfg.Set(key, value); err != nil {
				return err
			}

			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(a.stdout, "Set %s = %s\n", key, value)
			fmt.Fprintf(a.stdout, "Config saved to %s\n", path)

			// Settings are saved one at a time, so an intermediate state may
			// not be usable yet.
			check := *cfg
			if err := check.Validate(); err != nil {
				st := styles.New(a.stdout)
				fmt.Fprintf(a.stdout, "\n%s %v\n", st.Warning.Render("Note:"), err)
			}
			return nil
		},
	}
}
