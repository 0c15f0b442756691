package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/raterudder/solarsizer/pkg/log"
	"github.com/raterudder/solarsizer/pkg/types"
)

// Evaluator computes the annual cost of one (capacity, battery) pair.
type Evaluator interface {
	AnnualCost(records []types.Usage, a, b float64) float64
}

// DefaultCapacityRange steps the array from 16 to 90 old-panel equivalents of
// the 26 installed panels, 2 panels at a time.
func DefaultCapacityRange() types.Range {
	return types.Range{Start: 16.0 / 26.0, End: 90.0 / 26.0, Step: 2.0 / 26.0}
}

// DefaultBatteryRange steps the battery from none to 30 kWh.
func DefaultBatteryRange() types.Range {
	return types.Range{Start: 0, End: 30, Step: 5}
}

// Grid holds the cost of every evaluated pair. Costs is indexed by
// [capacity index][battery index].
type Grid struct {
	Capacities []float64   `json:"capacities"`
	Batteries  []float64   `json:"batteries"`
	Costs      [][]float64 `json:"costs"`
}

// Result is the outcome of a sweep.
type Result struct {
	Best types.SweepResult `json:"best"`
	Grid Grid              `json:"grid"`
}

// Optimizer searches capacity and battery sizes for the lowest annual cost.
type Optimizer struct {
	eval     Evaluator
	capacity types.Range
	battery  types.Range
	workers  int
}

// NewOptimizer creates a new Optimizer. workers <= 0 uses GOMAXPROCS.
func NewOptimizer(eval Evaluator, capacity, battery types.Range, workers int) *Optimizer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Optimizer{
		eval:     eval,
		capacity: capacity,
		battery:  battery,
		workers:  workers,
	}
}

// Run evaluates every (capacity, battery) pair against records and returns the
// cheapest. Ties keep the pair with the lowest capacity, then lowest battery.
func (o *Optimizer) Run(ctx context.Context, records []types.Usage) (Result, error) {
	if err := o.capacity.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid capacity range: %w", err)
	}
	if err := o.battery.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid battery range: %w", err)
	}

	grid := Grid{
		Capacities: o.capacity.Values(),
		Batteries:  o.battery.Values(),
	}
	grid.Costs = make([][]float64, len(grid.Capacities))
	for i := range grid.Costs {
		grid.Costs[i] = make([]float64, len(grid.Batteries))
	}

	// every evaluation writes only its own cell
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, a := range grid.Capacities {
		for j, b := range grid.Batteries {
			i, j, a, b := i, j, a, b
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				grid.Costs[i][j] = o.eval.AnnualCost(records, a, b)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Grid: grid}
	var found bool
	for i, a := range grid.Capacities {
		for j, b := range grid.Batteries {
			cost := grid.Costs[i][j]
			if !found || cost < res.Best.TotalCost {
				res.Best = types.SweepResult{
					CapacityMultiplier: a,
					BatteryCapacityKWH: b,
					TotalCost:          cost,
				}
				found = true
			}
		}
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"sweep finished",
		slog.Int("capacities", len(grid.Capacities)),
		slog.Int("batteries", len(grid.Batteries)),
		slog.Int("workers", o.workers),
		slog.Float64("bestCapacity", res.Best.CapacityMultiplier),
		slog.Float64("bestBatteryKWH", res.Best.BatteryCapacityKWH),
		slog.Float64("bestCost", res.Best.TotalCost),
	)

	return res, nil
}
