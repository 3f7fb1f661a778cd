package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hex-coverage-planner/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps planning errors onto HTTP statuses.
// Input errors are reported to the client; anything else is logged and hidden.
// Missing distance data is an integration bug, so it is a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		empty   *domain.EmptyAssignmentError
		invalid *domain.InvalidInputError
	)

	switch {
	case errors.As(err, &empty), errors.As(err, &invalid):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("%s timed out: %v", op, err)
		writeError(w, r, http.StatusGatewayTimeout, "planning timed out")
	default:
		log.Printf("%s failed: %v", op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
