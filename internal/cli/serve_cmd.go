package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buffos/go-roadmap/internal/export"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/render"
	"github.com/buffos/go-roadmap/internal/server"
	"github.com/buffos/go-roadmap/internal/store"
	"github.com/buffos/go-roadmap/internal/textmetrics"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roadmap HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				app.Config.Server.Port = port
			}
			return runServe(cmd.Context(), app)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config and ROADMAP_PORT)")
	return cmd
}

func runServe(ctx context.Context, app *App) error {
	cfg := app.Config

	db, err := store.OpenDB(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	measurer, err := textmetrics.New()
	if err != nil {
		return err
	}
	defer measurer.Close()

	srv := server.New(server.Options{
		Service: render.NewService(measurer, cfg.Render.Seed, app.Logger),
		Repo:    store.NewRoadmaps(db),
		Exporter: export.New(export.Options{
			Width:       layout.SVGWidth,
			Height:      layout.SVGHeight,
			Scale:       cfg.Export.Scale,
			JPEGQuality: cfg.Export.JPEGQuality,
			ChromePath:  cfg.Export.ChromePath,
		}, app.Logger),
		ExportTimeout: cfg.ExportTimeout(),
		ReadTimeout:   time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:  time.Duration(cfg.Server.WriteTimeout) * time.Second,
		AccessLog:     os.Stdout,
		Logger:        app.Logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(":" + cfg.Server.Port) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
