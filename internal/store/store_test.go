package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *Roadmaps {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRoadmaps(db)
}

func sampleInput(plan int) roadmap.Input {
	return roadmap.Input{PlanKey: plan, TargetMonthlyIncome: 40, MonthlySavings: 25, StartDate: "2024-01-01", ShowGrid: true, ShowIcons: true}
}

func TestRoadmaps_SaveGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, sampleInput(6), []byte("<svg/>"))
	require.NoError(t, err)
	assert.Len(t, saved.ID, 36)

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 6, got.PlanKey)
	assert.Equal(t, sampleInput(6), got.Input)
	assert.Equal(t, "<svg/>", got.SVG)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestRoadmaps_GetNotFound(t *testing.T) {
	_, err := testRepo(t).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoadmaps_ListNewestFirst(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var ids []string
	for _, plan := range []int{3, 6, 10} {
		rec, err := repo.Save(ctx, sampleInput(plan), []byte("<svg/>"))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)
	assert.Empty(t, all[0].SVG)

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, 10, two[0].PlanKey)
}

func TestOpenDB_FileReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roadmap.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	rec, err := NewRoadmaps(db).Save(context.Background(), sampleInput(4), []byte("<svg/>"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := NewRoadmaps(db).Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.PlanKey)
}
