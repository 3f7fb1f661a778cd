package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentVehiclesSorted(t *testing.T) {
	a := Assignment{
		3: {{ID: 1}},
		0: {{ID: 2}, {ID: 5}},
		1: {{ID: 4}},
	}

	assert.Equal(t, []VehicleID{0, 1, 3}, a.Vehicles())
	assert.Equal(t, 4, a.CellCount())
}

func TestPositionFinite(t *testing.T) {
	assert.True(t, Position{X: 1, Y: -2}.Finite())
	assert.False(t, Position{X: math.NaN(), Y: 0}.Finite())
	assert.False(t, Position{X: 0, Y: math.Inf(-1)}.Finite())
}

func TestErrorsMatchThroughWrapping(t *testing.T) {
	vid := VehicleID(7)
	err := fmt.Errorf("plan: %w", &EmptyAssignmentError{VehicleID: &vid})

	var empty *EmptyAssignmentError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "empty assignment: vehicle 7 has no cells", empty.Error())

	err = fmt.Errorf("plan: %w", &IncompleteDistanceDataError{From: 1, To: 2})
	var incomplete *IncompleteDistanceDataError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, CellID(2), incomplete.To)
}
