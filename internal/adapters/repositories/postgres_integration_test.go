//go:build postgres_integration

package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/platform/db"
)

func TestPostgresCoverageRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(ctx, conn))

	repo := NewPostgresCoverageRepository(conn)
	require.NoError(t, repo.SeedGrid(ctx, testHexes()))

	cells, err := repo.ListCells(ctx)
	require.NoError(t, err)
	require.Len(t, cells, 7)

	in := domain.Assignment{0: {cells[0], cells[3]}, 1: {cells[1]}}
	require.NoError(t, repo.ReplaceAssignments(ctx, 2, in))

	got, err := repo.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	require.Error(t, repo.ReplaceAssignments(ctx, 2, domain.Assignment{0: {{ID: 99}}}))
}
