package hexgrid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex-coverage-planner/internal/domain"
)

func newTestIndex(t *testing.T, radius int) (*Index, []domain.Cell) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Radius = radius
	g, err := NewGrid(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	cells := g.Cells()
	ix, err := NewIndex(cells, cfg.Size)
	require.NoError(t, err)
	return ix, cells
}

func TestIndex_LocateCentres(t *testing.T) {
	ix, cells := newTestIndex(t, 4)
	assert.Equal(t, len(cells), ix.Size())

	for _, c := range cells {
		got, ok := ix.Locate(c.Position)
		require.True(t, ok, "cell %d", c.ID)
		assert.Equal(t, c.ID, got.ID)
	}
}

func TestIndex_LocateInsideHex(t *testing.T) {
	ix, _ := newTestIndex(t, 1)

	// Origin hex is index 3 at radius 1.
	got, ok := ix.Locate(domain.Position{X: 0.3, Y: -0.2})
	require.True(t, ok)
	assert.Equal(t, domain.CellID(3), got.ID)

	// Just short of the centre of axial (1, 0).
	got, ok = ix.Locate(domain.Position{X: 1.4, Y: math.Sqrt(3) / 2})
	require.True(t, ok)
	assert.Equal(t, domain.CellID(6), got.ID)
}

func TestIndex_LocateOutside(t *testing.T) {
	ix, _ := newTestIndex(t, 1)

	_, ok := ix.Locate(domain.Position{X: 50, Y: -50})
	assert.False(t, ok)

	_, ok = ix.Locate(domain.Position{X: math.NaN(), Y: 0})
	assert.False(t, ok)
}

func TestIndex_LocateEdgeOfMap(t *testing.T) {
	ix, err := NewIndex([]domain.Cell{{ID: 0, Priority: 1}}, 1)
	require.NoError(t, err)

	// The top edge of a unit flat-top hex is at y = √3/2.
	_, ok := ix.Locate(domain.Position{X: 0, Y: 0.95})
	assert.False(t, ok)

	got, ok := ix.Locate(domain.Position{X: 0, Y: 0.85})
	require.True(t, ok)
	assert.Equal(t, domain.CellID(0), got.ID)

	// Within the circumradius but beyond a slanted edge.
	_, ok = ix.Locate(domain.Position{X: 0.9, Y: 0.3})
	assert.False(t, ok)

	// Vertex.
	_, ok = ix.Locate(domain.Position{X: 1, Y: 0})
	assert.True(t, ok)
}

func TestIndex_LocateBeyondOuterRing(t *testing.T) {
	ix, _ := newTestIndex(t, 1)

	// Axial (1, 0) is centred at (1.5, √3/2); its top edge is at y = √3.
	_, ok := ix.Locate(domain.Position{X: 1.5, Y: math.Sqrt(3) + 0.05})
	assert.False(t, ok)

	got, ok := ix.Locate(domain.Position{X: 1.5, Y: math.Sqrt(3) - 0.05})
	require.True(t, ok)
	assert.Equal(t, domain.CellID(6), got.ID)
}

func TestIndex_Empty(t *testing.T) {
	ix, err := NewIndex(nil, 1)
	require.NoError(t, err)
	_, ok := ix.Locate(domain.Position{})
	assert.False(t, ok)
}

func TestNewIndex_Invalid(t *testing.T) {
	_, err := NewIndex(nil, 0)
	assert.Error(t, err)

	_, err = NewIndex([]domain.Cell{{ID: 9, Position: domain.Position{X: math.Inf(1)}}}, 1)
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, domain.CellID(9), invalid.CellID)
}
