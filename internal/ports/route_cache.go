package ports

import (
	"context"

	"hex-coverage-planner/internal/domain"
)

// Contract for caching computed route plans by an input fingerprint.
// Cached plans are reused only for identical inputs, so routes stay deterministic.
type RouteCache interface {
	// Return the cached plan for key and whether it was found.
	Get(ctx context.Context, key string) (*domain.RoutePlan, bool, error)
	// Store a plan under key.
	Put(ctx context.Context, key string, plan *domain.RoutePlan) error
}
