// Package server exposes roadmap rendering over HTTP.
package server

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/buffos/go-roadmap/internal/export"
	"github.com/buffos/go-roadmap/internal/render"
	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/store"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// Exporter converts SVG into a downloadable format.
type Exporter interface {
	Export(ctx context.Context, svg []byte, f export.Format, w io.Writer) error
}

// Renderer turns user input into a finished roadmap.
type Renderer interface {
	Render(in roadmap.Input) (*render.Result, error)
}

// Repository is the render history the server reads and writes.
type Repository interface {
	Save(ctx context.Context, in roadmap.Input, svg []byte) (*store.Record, error)
	Get(ctx context.Context, id string) (*store.Record, error)
	List(ctx context.Context, limit int) ([]*store.Record, error)
}

// Options wires a Server.
type Options struct {
	Service       Renderer
	Repo          Repository
	Exporter      Exporter
	ExportTimeout time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AccessLog     io.Writer // nil disables request logging
	Logger        *slog.Logger
}

// Server is the HTTP API.
type Server struct {
	app    *fiber.App
	opts   Options
	logger *slog.Logger
}

// New builds the app and registers every route.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ExportTimeout <= 0 {
		opts.ExportTimeout = 30 * time.Second
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		AppName:      "roadmap",
	})

	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
			Stream:     opts.AccessLog,
		}))
	}

	s := &Server{app: app, opts: opts, logger: opts.Logger}

	app.Get("/health/live", s.liveness)
	app.Get("/plans", s.listPlans)

	app.Post("/render", s.renderStateless)
	app.Post("/tree", s.renderTree)

	app.Post("/roadmaps", s.createRoadmap)
	app.Get("/roadmaps", s.listRoadmaps)
	app.Get("/roadmaps/:id", s.getRoadmap)
	app.Get("/roadmaps/:id/:format", s.downloadRoadmap)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
