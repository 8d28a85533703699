package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no roadmap has the requested ID.
var ErrNotFound = errors.New("roadmap not found")

// Record is one rendered roadmap.
type Record struct {
	ID        string        `json:"id"`
	PlanKey   int           `json:"plan_key"`
	Input     roadmap.Input `json:"input"`
	SVG       string        `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// createdLayout sorts lexically in time order for UTC times.
const createdLayout = "2006-01-02T15:04:05.000Z07:00"

// Roadmaps stores rendered roadmaps.
type Roadmaps struct {
	db  *sql.DB
	now func() time.Time
}

// NewRoadmaps returns a repository over db.
func NewRoadmaps(db *sql.DB) *Roadmaps {
	return &Roadmaps{db: db, now: time.Now}
}

// Save stores the input and its SVG under a new ID and returns the record.
func (r *Roadmaps) Save(ctx context.Context, in roadmap.Input, svg []byte) (*Record, error) {
	inputJSON, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding input: %w", err)
	}
	rec := &Record{
		ID:        uuid.New().String(),
		PlanKey:   in.PlanKey,
		Input:     in,
		SVG:       string(svg),
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	query := `INSERT INTO roadmaps (id, plan_key, input_json, svg, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.PlanKey,
		string(inputJSON),
		rec.SVG,
		rec.CreatedAt.Format(createdLayout),
	); err != nil {
		return nil, fmt.Errorf("inserting roadmap: %w", err)
	}
	return rec, nil
}

// Get returns the roadmap with the given ID, SVG included.
func (r *Roadmaps) Get(ctx context.Context, id string) (*Record, error) {
	query := `SELECT id, plan_key, input_json, svg, created_at FROM roadmaps WHERE id = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("roadmap %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting roadmap %s: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit roadmaps, newest first, without their SVG. A
// non-positive limit returns everything.
func (r *Roadmaps) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, plan_key, input_json, '', created_at FROM roadmaps ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing roadmaps: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scanning roadmap: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing roadmaps: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, withSVG bool) (*Record, error) {
	var (
		rec       Record
		inputJSON string
		svg       string
		createdAt string
	)
	if err := s.Scan(&rec.ID, &rec.PlanKey, &inputJSON, &svg, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(inputJSON), &rec.Input); err != nil {
		return nil, fmt.Errorf("decoding input of %s: %w", rec.ID, err)
	}
	t, err := time.Parse(createdLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at of %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	if withSVG {
		rec.SVG = svg
	}
	return &rec, nil
}
