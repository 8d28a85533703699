package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/buffos/go-roadmap/internal/export"
	"github.com/buffos/go-roadmap/internal/render"
	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/store"
	"github.com/gofiber/fiber/v3"
)

const defaultListLimit = 50

func (s *Server) liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

func (s *Server) listPlans(c fiber.Ctx) error {
	return c.JSON(roadmap.Plans())
}

// renderStateless returns the roadmap for the posted input in ?format=,
// SVG by default, without storing it.
func (s *Server) renderStateless(c fiber.Ctx) error {
	f, err := export.ParseFormat(c.Query("format", string(export.SVG)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	res, err := s.render(c)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.send(c, res.SVG, f)
}

func (s *Server) renderTree(c fiber.Ctx) error {
	res, err := s.render(c)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(res.Tree)
}

func (s *Server) createRoadmap(c fiber.Ctx) error {
	res, err := s.render(c)
	if err != nil {
		return s.renderError(c, err)
	}
	rec, err := s.opts.Repo.Save(c.Context(), res.Input, res.SVG)
	if err != nil {
		s.logger.Error("saving roadmap", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save roadmap"})
	}
	c.Set(fiber.HeaderLocation, "/roadmaps/"+rec.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         rec.ID,
		"created_at": rec.CreatedAt,
		"data":       res.Data,
	})
}

func (s *Server) listRoadmaps(c fiber.Ctx) error {
	limit := defaultListLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}
	recs, err := s.opts.Repo.List(c.Context(), limit)
	if err != nil {
		s.logger.Error("listing roadmaps", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not list roadmaps"})
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	return c.JSON(recs)
}

func (s *Server) getRoadmap(c fiber.Ctx) error {
	rec, err := s.opts.Repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.recordError(c, err)
	}
	return c.JSON(rec)
}

func (s *Server) downloadRoadmap(c fiber.Ctx) error {
	f, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	rec, err := s.opts.Repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.recordError(c, err)
	}
	return s.send(c, []byte(rec.SVG), f)
}

func (s *Server) recordError(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "roadmap not found"})
	}
	s.logger.Error("getting roadmap", "id", c.Params("id"), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load roadmap"})
}

func (s *Server) render(c fiber.Ctx) (*render.Result, error) {
	if len(c.Body()) == 0 {
		return nil, errBodyRequired
	}
	var in roadmap.Input
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return s.opts.Service.Render(in)
}

var (
	errBodyRequired = errors.New("body required")
	errInvalidJSON  = errors.New("invalid JSON payload")
)

func (s *Server) renderError(c fiber.Ctx, err error) error {
	var verr *render.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, errBodyRequired), errors.Is(err, errInvalidJSON):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	s.logger.Error("rendering roadmap", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not render roadmap"})
}

func (s *Server) send(c fiber.Ctx, svg []byte, f export.Format) error {
	var buf bytes.Buffer
	if f == export.SVG {
		buf.Write(svg)
	} else {
		ctx, cancel := context.WithTimeout(c.Context(), s.opts.ExportTimeout)
		defer cancel()
		if err := s.opts.Exporter.Export(ctx, svg, f, &buf); err != nil {
			s.logger.Error("exporting roadmap", "format", f, "error", err)
			status := fiber.StatusInternalServerError
			if errors.Is(err, context.DeadlineExceeded) {
				status = fiber.StatusGatewayTimeout
			}
			return c.Status(status).JSON(fiber.Map{"error": "export failed"})
		}
	}
	c.Set(fiber.HeaderContentType, f.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, f.Filename()))
	return c.Send(buf.Bytes())
}
