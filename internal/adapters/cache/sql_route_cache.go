package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/platform/obs"
)

// SQLRouteCache is a Postgres-backed cache for computed route plans.
// It needs the route_cache table created by repositories.InitSchema.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch the cached plan for key.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ *domain.RoutePlan, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT plan
	FROM route_cache
	WHERE key = $1;
	`

	var data []byte
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var plan domain.RoutePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode key=%s: %w", key, err)
	}
	return &plan, true, nil
}

// Store plan under key, replacing any previous entry.
func (s *SQLRouteCache) Put(ctx context.Context, key string, plan *domain.RoutePlan) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if plan == nil {
		return errors.New("insert route cache: plan is nil")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert route cache: encode key=%s: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (key, plan)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE
	SET plan = EXCLUDED.plan,
		updated_at = now();
	`, key, data)
	if err != nil {
		return fmt.Errorf("insert route cache key=%s: %w", key, err)
	}

	return nil
}
