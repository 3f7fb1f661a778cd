package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"hex-coverage-planner/internal/config"
	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/services"
)

type benchFlags struct {
	instances int
	minCells  int
	maxCells  int
	extent    float64
	seed      int64
}

// benchResult holds greedy-to-optimal length ratios. Mean and Worst compare
// against the best path from the same start cell; FreeMean and FreeWorst
// against the best path from any cell.
type benchResult struct {
	Instances int
	Mean      float64
	Worst     float64
	FreeMean  float64
	FreeWorst float64
	Elapsed   time.Duration
}

func newBenchCmd() *cobra.Command {
	var f benchFlags

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare greedy routes against the exact optimum on random instances",
		Long: `Generate random cell sets, plan each with the configured options and
report the ratio of the greedy path length to the shortest path from the
same start cell and to the shortest path from any cell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts, err := cfg.Planner.PlanOptions()
			if err != nil {
				return err
			}

			res, err := runBench(f, opts)
			if err != nil {
				return err
			}
			return printBench(cmd.OutOrStdout(), f, res)
		},
	}

	cmd.Flags().IntVarP(&f.instances, "instances", "i", 200, "Number of random instances")
	cmd.Flags().IntVar(&f.minCells, "min-cells", 3, "Smallest instance size")
	cmd.Flags().IntVar(&f.maxCells, "max-cells", 9, "Largest instance size")
	cmd.Flags().Float64Var(&f.extent, "extent", 100, "Coordinates are drawn from [0, extent)")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "Random seed")

	return cmd
}

func runBench(f benchFlags, opts services.PlanOptions) (benchResult, error) {
	if f.instances < 1 {
		return benchResult{}, fmt.Errorf("bench: instances must be at least 1")
	}
	if f.minCells < 2 || f.maxCells < f.minCells || f.maxCells > services.MaxExactCells {
		return benchResult{}, fmt.Errorf("bench: cell range must satisfy 2 <= min <= max <= %d", services.MaxExactCells)
	}

	rng := rand.New(rand.NewSource(f.seed))
	start := time.Now()

	res := benchResult{Instances: f.instances}
	sum, freeSum := 0.0, 0.0
	for i := 0; i < f.instances; i++ {
		n := f.minCells + rng.Intn(f.maxCells-f.minCells+1)
		cells := make([]domain.Cell, n)
		for j := range cells {
			cells[j] = domain.Cell{
				ID:       domain.CellID(j),
				Position: domain.Position{X: rng.Float64() * f.extent, Y: rng.Float64() * f.extent},
				Priority: float64(1 + rng.Intn(5)),
			}
		}

		q, err := services.MeasureRoute(cells, opts)
		if err != nil {
			return benchResult{}, fmt.Errorf("bench: instance %d: %w", i, err)
		}
		sum += q.SameStart
		freeSum += q.FreeStart
		res.Worst = max(res.Worst, q.SameStart)
		res.FreeWorst = max(res.FreeWorst, q.FreeStart)
	}

	res.Mean = sum / float64(f.instances)
	res.FreeMean = freeSum / float64(f.instances)
	res.Elapsed = time.Since(start)
	return res, nil
}

func printBench(out io.Writer, f benchFlags, res benchResult) error {
	_, err := fmt.Fprintf(out,
		"instances=%d cells=%d..%d mean_ratio=%.4f worst_ratio=%.4f free_mean_ratio=%.4f free_worst_ratio=%.4f dur=%dms\n",
		res.Instances, f.minCells, f.maxCells, res.Mean, res.Worst, res.FreeMean, res.FreeWorst,
		res.Elapsed.Milliseconds(),
	)
	return err
}
