package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	Port          string        `yaml:"port"`
	DatabaseURL   string        `yaml:"database_url"`
	RedisURL      string        `yaml:"redis_url"`
	RouteCacheTTL time.Duration `yaml:"route_cache_ttl"`
	VehicleCount  int           `yaml:"vehicle_count"`
	Planner       Planner       `yaml:"planner"`
	Grid          Grid          `yaml:"grid"`
	RateLimit     RateLimit     `yaml:"rate_limit"`
}

// Planner holds route construction settings.
type Planner struct {
	Metric         string        `yaml:"metric"`
	StartPolicy    string        `yaml:"start_policy"`
	TieBreak       string        `yaml:"tie_break"`
	PriorityWeight float64       `yaml:"priority_weight"`
	Workers        int           `yaml:"workers"`
	VehicleTimeout time.Duration `yaml:"vehicle_timeout"`
}

// Grid describes the generated coverage map.
type Grid struct {
	Radius      int     `yaml:"radius"`
	HexSize     float64 `yaml:"hex_size"`
	Clusters    int     `yaml:"clusters"`
	MaxPriority int     `yaml:"max_priority"`
	Seed        int64   `yaml:"seed"`
}

// RateLimit bounds API request throughput. Zero RPS disables limiting.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:          "8080",
		RouteCacheTTL: time.Hour,
		VehicleCount:  3,
		Planner: Planner{
			Metric:      "euclidean",
			StartPolicy: "max-priority",
			TieBreak:    "smallest-id",
			Workers:     4,
		},
		Grid: Grid{
			Radius:      4,
			HexSize:     1,
			Clusters:    3,
			MaxPriority: 5,
			Seed:        1,
		},
		RateLimit: RateLimit{RPS: 20, Burst: 40},
	}
}

// Load reads .env, then the YAML file named by CONFIG_PATH (if any), then environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("load config: parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = Get("PORT", c.Port)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.RedisURL = Get("REDIS_URL", c.RedisURL)
	c.Planner.Metric = Get("DISTANCE_METRIC", c.Planner.Metric)
	c.Planner.StartPolicy = Get("START_POLICY", c.Planner.StartPolicy)
	c.Planner.TieBreak = Get("TIE_BREAK", c.Planner.TieBreak)

	var err error
	set := func(key string, parse func(string) error) {
		if err != nil {
			return
		}
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		if perr := parse(v); perr != nil {
			err = fmt.Errorf("load config: %s=%q: %w", key, v, perr)
		}
	}

	set("ROUTE_CACHE_TTL", durationInto(&c.RouteCacheTTL))
	set("VEHICLE_COUNT", intInto(&c.VehicleCount))
	set("PRIORITY_WEIGHT", floatInto(&c.Planner.PriorityWeight))
	set("PLAN_WORKERS", intInto(&c.Planner.Workers))
	set("PLAN_VEHICLE_TIMEOUT", durationInto(&c.Planner.VehicleTimeout))
	set("GRID_RADIUS", intInto(&c.Grid.Radius))
	set("HEX_SIZE", floatInto(&c.Grid.HexSize))
	set("PRIORITY_CLUSTERS", intInto(&c.Grid.Clusters))
	set("MAX_PRIORITY", intInto(&c.Grid.MaxPriority))
	set("GRID_SEED", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		c.Grid.Seed = v
		return err
	})
	set("RATE_LIMIT_RPS", floatInto(&c.RateLimit.RPS))
	set("RATE_LIMIT_BURST", intInto(&c.RateLimit.Burst))

	return err
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intInto(dst *int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func floatInto(dst *float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func durationInto(dst *time.Duration) func(string) error {
	return func(s string) error {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
