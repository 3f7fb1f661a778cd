package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex-coverage-planner/internal/domain"
)

func TestWriteServiceError(t *testing.T) {
	vid := domain.VehicleID(2)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "empty assignment",
			err:     fmt.Errorf("plan fleet: %w", &domain.EmptyAssignmentError{VehicleID: &vid}),
			status:  http.StatusUnprocessableEntity,
			message: "plan fleet: empty assignment: vehicle 2 has no cells",
		},
		{
			name:    "invalid input",
			err:     &domain.InvalidInputError{CellID: 4, Reason: "duplicate id"},
			status:  http.StatusUnprocessableEntity,
			message: "invalid input: cell 4: duplicate id",
		},
		{
			name:    "incomplete distance data",
			err:     fmt.Errorf("plan vehicle: %w", &domain.IncompleteDistanceDataError{From: 1, To: 2}),
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
		{
			name:    "vehicle timeout",
			err:     fmt.Errorf("plan fleet: vehicle 0: abandoned after 1ns: %w", context.DeadlineExceeded),
			status:  http.StatusGatewayTimeout,
			message: "planning timed out",
		},
		{
			name:    "other",
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/plans", nil)
			rec := httptest.NewRecorder()

			writeServiceError(rec, req, "plan", tt.err)

			require.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
