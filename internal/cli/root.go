// Package cli is the roadmap command line.
package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/buffos/go-roadmap/internal/config"
	"github.com/spf13/cobra"
)

// App carries what the commands share. Config and Logger are filled in by
// the root command before any subcommand runs.
type App struct {
	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal the input form can use.
	IsInteractive func() bool
	Now           func() time.Time
}

// NewRootCmd creates the top-level "roadmap" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	if app.IsInteractive == nil {
		app.IsInteractive = func() bool { return false }
	}
	if app.Now == nil {
		app.Now = time.Now
	}

	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "roadmap",
		Short:         "Hand-drawn freelance roadmap generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Logger = newLogger(cmd.ErrOrStderr(), verbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRenderCmd(app),
		newPlansCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
	)

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
