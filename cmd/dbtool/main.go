package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"hex-coverage-planner/internal/adapters/repositories"
	"hex-coverage-planner/internal/config"
	"hex-coverage-planner/internal/platform/db"
	"hex-coverage-planner/internal/services"
)

const usage = "usage: dbtool [init|seed|assign|all]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	step := "all"
	if len(os.Args) > 1 {
		step = os.Args[1]
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := run(ctx, conn, cfg, step); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, conn *sql.DB, cfg config.Config, step string) error {
	repo := repositories.NewPostgresCoverageRepository(conn)

	switch step {
	case "init":
		return initSchema(ctx, conn)
	case "seed":
		return seed(ctx, repo, cfg)
	case "assign":
		return assign(ctx, repo, cfg)
	case "all":
		if err := initSchema(ctx, conn); err != nil {
			return err
		}
		if err := seed(ctx, repo, cfg); err != nil {
			return err
		}
		return assign(ctx, repo, cfg)
	default:
		return fmt.Errorf("unknown step %q; %s", step, usage)
	}
}

func initSchema(ctx context.Context, conn *sql.DB) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

func seed(ctx context.Context, repo *repositories.PostgresCoverageRepository, cfg config.Config) error {
	log.Printf("Seeding hex grid radius=%d clusters=%d seed=%d...", cfg.Grid.Radius, cfg.Grid.Clusters, cfg.Grid.Seed)
	grid, err := cfg.Grid.Generate()
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := repo.SeedGrid(ctx, grid.Hexes); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. hexes=%d", len(grid.Hexes))
	return nil
}

func assign(ctx context.Context, repo *repositories.PostgresCoverageRepository, cfg config.Config) error {
	log.Printf("Assigning hexes to %d vehicles...", cfg.VehicleCount)
	a, err := services.AssignFleet(ctx, repo, cfg.VehicleCount)
	if err != nil {
		return fmt.Errorf("assignment failed: %w", err)
	}
	for _, vid := range a.Vehicles() {
		log.Printf("vehicle=%d hexes=%d", vid, len(a[vid]))
	}
	log.Println("Assignment complete.")
	return nil
}
