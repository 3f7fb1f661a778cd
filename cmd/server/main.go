package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"hex-coverage-planner/internal/adapters/cache"
	"hex-coverage-planner/internal/adapters/repositories"
	"hex-coverage-planner/internal/api"
	"hex-coverage-planner/internal/config"
	"hex-coverage-planner/internal/platform/db"
	"hex-coverage-planner/internal/ports"
	"hex-coverage-planner/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or memory, Redis or SQL cache) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fleetReq, err := cfg.Planner.FleetRequest(false)
	if err != nil {
		log.Fatal(err)
	}

	var (
		store ports.CoverageStore
		conn  *sql.DB
	)
	if cfg.DatabaseURL != "" {
		conn, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
		store = repositories.NewPostgresCoverageRepository(conn)
		log.Println("store=postgres")
	} else {
		store = repositories.NewMemoryCoverageRepository()
		log.Println("store=memory (DATABASE_URL not set)")
	}

	// Seed a demo map on first start so the API is usable out of the box.
	if err := seedIfEmpty(ctx, store, cfg); err != nil {
		log.Fatal(err)
	}

	routeCache, closeCache := openRouteCache(ctx, cfg, conn)
	defer closeCache()

	router := api.NewRouter(api.Deps{
		Store:     store,
		Cache:     routeCache,
		Request:   fleetReq,
		HexSize:   cfg.Grid.HexSize,
		RateLimit: rate.Limit(cfg.RateLimit.RPS),
		Burst:     cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func seedIfEmpty(ctx context.Context, store ports.CoverageStore, cfg config.Config) error {
	cells, err := store.ListCells(ctx)
	if err != nil {
		return fmt.Errorf("seed if empty: %w", err)
	}
	if len(cells) > 0 {
		return nil
	}

	grid, err := cfg.Grid.Generate()
	if err != nil {
		return fmt.Errorf("seed if empty: %w", err)
	}
	if err := store.SeedGrid(ctx, grid.Hexes); err != nil {
		return fmt.Errorf("seed if empty: %w", err)
	}
	if _, err := services.AssignFleet(ctx, store, cfg.VehicleCount); err != nil {
		return fmt.Errorf("seed if empty: %w", err)
	}

	log.Printf("seeded hexes=%d vehicles=%d", len(grid.Hexes), cfg.VehicleCount)
	return nil
}

// openRouteCache prefers Redis, falls back to the Postgres table, and otherwise disables caching.
func openRouteCache(ctx context.Context, cfg config.Config, conn *sql.DB) (ports.RouteCache, func()) {
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisRouteCacheFromURL(cfg.RedisURL, cfg.RouteCacheTTL)
		if err == nil {
			if err = rc.Ping(ctx); err == nil {
				log.Println("route_cache=redis")
				return rc, func() { _ = rc.Close() }
			}
			_ = rc.Close()
		}
		log.Printf("route_cache=redis unavailable, falling back: %v", err)
	}

	if conn != nil {
		log.Println("route_cache=postgres")
		return cache.NewSQLRouteCache(conn), func() {}
	}

	log.Println("route_cache=none")
	return nil, func() {}
}
