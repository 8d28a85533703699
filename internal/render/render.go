// Package render runs the whole pipeline from user input to SVG.
package render

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/buffos/go-roadmap/internal/composer"
	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/sketch"
	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// ValidationError carries one message per rejected input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Result is everything produced for one input.
type Result struct {
	Input roadmap.Input
	Data  roadmap.Data
	Tree  *drawing.Tree
	SVG   []byte
}

// Service renders roadmaps with a shared measurement context.
type Service struct {
	measurer textmetrics.Measurer
	encoder  sketch.Encoder
	logger   *slog.Logger
}

// NewService returns a Service. m must be safe for concurrent use when the
// service is shared between goroutines.
func NewService(m textmetrics.Measurer, seed uint64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{measurer: m, encoder: sketch.Encoder{Seed: seed}, logger: logger}
}

// Render validates in, composes the roadmap and encodes it. Invalid input is
// reported as a *ValidationError.
func (s *Service) Render(in roadmap.Input) (*Result, error) {
	if errs := roadmap.Validate(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	data, err := roadmap.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("calculating roadmap: %w", err)
	}

	tree := composer.Compose(s.measurer, data)
	svg, err := s.encoder.Encode(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding roadmap: %w", err)
	}

	s.logger.Debug("rendered roadmap",
		"plan", data.PlanKey,
		"freelance_months", data.FreelanceMonths,
		"svg_bytes", len(svg))
	return &Result{Input: in, Data: data, Tree: tree, SVG: svg}, nil
}
