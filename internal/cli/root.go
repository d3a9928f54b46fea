package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/artpar/reqscope/internal/app"
	"github.com/artpar/reqscope/internal/logging"
	"github.com/artpar/reqscope/internal/session"
	"github.com/artpar/reqscope/internal/tui/views"
)

// ErrNotTerminal is returned when the interactive form is started without a
// terminal on stdin and stdout.
var ErrNotTerminal = errors.New("reqscope needs an interactive terminal")

// RootOptions holds the flags shared by every command.
type RootOptions struct {
	Timeout     time.Duration
	NoRedirects bool
	Insecure    bool
	LogLevel    string
	LogFile     string
}

// Config converts the flags into an application configuration.
func (o *RootOptions) Config() app.Config {
	return app.Config{
		Timeout:         o.Timeout,
		FollowRedirects: !o.NoRedirects,
		Insecure:        o.Insecure,
		LogLevel:        o.LogLevel,
		LogFile:         o.LogFile,
	}
}

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "reqscope",
		Short: "reqscope - a terminal HTTP request form",
		Long: "reqscope is a single-screen terminal form for composing an HTTP request " +
			"and reading the response.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Initialize(opts.LogLevel, opts.LogFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts.Config())
		},
	}

	defaults := app.DefaultConfig()
	flags := cmd.PersistentFlags()
	flags.DurationVar(&opts.Timeout, "timeout", defaults.Timeout, "Request timeout")
	flags.BoolVar(&opts.NoRedirects, "no-redirects", false, "Do not follow redirects")
	flags.BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate verification")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	flags.StringVar(&opts.LogFile, "log-file", logging.DefaultLogFile(), "Log file path")

	cmd.AddCommand(NewSendCommand(opts))

	return cmd
}

// newProgram wires the request form for cfg.
func newProgram(cfg app.Config) *tea.Program {
	application := app.New(app.WithConfig(cfg))
	dispatcher := session.NewDispatcher(application, cfg.Timeout)
	view := views.NewMainView(session.New(dispatcher))
	return tea.NewProgram(view, tea.WithAltScreen())
}

// runTUI starts the TUI application
func runTUI(cfg app.Config) error {
	if !isTerminal() {
		logging.Error("request form needs a terminal", zap.Error(ErrNotTerminal))
		return ErrNotTerminal
	}

	logging.Info("starting request form")

	if _, err := newProgram(cfg).Run(); err != nil {
		logging.Error("TUI exited with error", zap.Error(err))
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
