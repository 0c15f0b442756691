package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarsizer/pkg/config"
	"github.com/raterudder/solarsizer/pkg/impute"
	"github.com/raterudder/solarsizer/pkg/install"
	"github.com/raterudder/solarsizer/pkg/log"
	"github.com/raterudder/solarsizer/pkg/simulate"
	"github.com/raterudder/solarsizer/pkg/sweep"
	"github.com/raterudder/solarsizer/pkg/types"
	"github.com/raterudder/solarsizer/pkg/usage"
)

// Plan is the outcome of sizing a home.
type Plan struct {
	// MeteredRecords is the number of records read from the data directory.
	MeteredRecords int `json:"meteredRecords"`
	// ImputedRecords is the number of records synthesized for the gap.
	ImputedRecords int `json:"imputedRecords"`
	// AdjustedRecords is the number of records changed by adjustments.
	AdjustedRecords int `json:"adjustedRecords"`

	// MaxExport is the metered hour with the most export.
	MaxExport      types.Usage `json:"maxExport"`
	TotalImportKWH float64     `json:"totalImportKWH"`

	Sweep   sweep.Result     `json:"sweep"`
	Quote   install.Quote    `json:"quote"`
	Outcome simulate.Outcome `json:"outcome"`
}

// Planner reads the meter history, fills the gap, and sweeps for the cheapest
// installation.
type Planner struct {
	cfg       config.Config
	reader    usage.Reader
	engine    *impute.Engine
	sim       *simulate.Simulator
	optimizer *sweep.Optimizer
}

// New creates a new Planner from a validated scenario.
func New(cfg config.Config, reader usage.Reader) (*Planner, error) {
	scaling, err := cfg.ScalingTable()
	if err != nil {
		return nil, err
	}
	rates, err := cfg.RateModel()
	if err != nil {
		return nil, err
	}
	sim := simulate.NewSimulator(cfg.Costs, cfg.Economics, rates)
	return &Planner{
		cfg:       cfg,
		reader:    reader,
		engine:    impute.NewEngine(scaling),
		sim:       sim,
		optimizer: sweep.NewOptimizer(sim, cfg.Sweep.Capacity, cfg.Sweep.Battery, cfg.Sweep.Workers),
	}, nil
}

// Configured returns a Planner reading CSV exports once cfg is resolved.
func Configured(cfg *config.Config) *Planner {
	p := &Planner{}
	lflag.Do(func() {
		np, err := New(*cfg, usage.CSVReader{})
		if err != nil {
			panic(fmt.Sprintf("failed to create planner: %v", err))
		}
		*p = *np
	})
	return p
}

// Run sizes the installation.
func (p *Planner) Run(ctx context.Context) (Plan, error) {
	var plan Plan

	metered, err := p.reader.ReadDir(ctx, p.cfg.DataDir)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read usage: %w", err)
	}
	if len(metered) == 0 {
		return Plan{}, fmt.Errorf("no usage records in %s", p.cfg.DataDir)
	}
	plan.MeteredRecords = len(metered)
	plan.MaxExport = maxExport(metered)
	log.Ctx(ctx).InfoContext(
		ctx,
		"max export hour",
		slog.String("date", plan.MaxExport.Date()),
		slog.String("startTime", plan.MaxExport.StartTime()),
		slog.Float64("exportKWH", plan.MaxExport.ExportKWH),
	)

	importRef, err := p.reader.ReadFile(ctx, p.cfg.ReferencePath(p.cfg.ImportReference))
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read import reference: %w", err)
	}
	exportRef, err := p.reader.ReadFile(ctx, p.cfg.ReferencePath(p.cfg.ExportReference))
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read export reference: %w", err)
	}

	imputed, err := p.engine.Impute(ctx, importRef, exportRef, p.cfg.Gap.Start, p.cfg.Gap.End)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to impute gap: %w", err)
	}
	plan.ImputedRecords = len(imputed)

	records := make([]types.Usage, 0, len(imputed)+len(metered))
	records = append(records, imputed...)
	records = append(records, metered...)

	for _, adj := range p.cfg.Adjustments {
		n := adj.Apply(records)
		plan.AdjustedRecords += n
		log.Ctx(ctx).DebugContext(
			ctx,
			"applied adjustment",
			slog.String("description", adj.Description),
			slog.Int("records", n),
		)
	}

	for _, u := range records {
		plan.TotalImportKWH += u.ImportKWH
	}
	log.Ctx(ctx).InfoContext(
		ctx,
		"combined usage",
		slog.Int("records", len(records)),
		slog.Float64("totalImportKWH", plan.TotalImportKWH),
	)

	if err := usage.ValidateCoverage(records, p.cfg.CoverageDays); err != nil {
		p.logCoverage(ctx, records)
		return Plan{}, err
	}

	res, err := p.optimizer.Run(ctx, records)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to sweep: %w", err)
	}
	plan.Sweep = res
	plan.Quote = p.sim.Quote(res.Best.CapacityMultiplier)
	plan.Outcome = p.sim.Simulate(records, res.Best.CapacityMultiplier, res.Best.BatteryCapacityKWH)

	log.Ctx(ctx).InfoContext(
		ctx,
		"minimum total annual cost",
		slog.Float64("totalCost", res.Best.TotalCost),
		slog.Float64("capacityMultiplier", res.Best.CapacityMultiplier),
		slog.Float64("batteryKWH", res.Best.BatteryCapacityKWH),
		slog.String("strategy", string(plan.Quote.Strategy)),
		slog.String("quote", plan.Quote.Description),
	)
	return plan, nil
}

// logCoverage logs which hours are duplicated or missing from records over
// the configured number of days starting at the first record.
func (p *Planner) logCoverage(ctx context.Context, records []types.Usage) {
	if len(records) == 0 {
		return
	}
	start := records[0].TSHourStart
	end := start.AddDate(0, 0, p.cfg.CoverageDays-1)
	duplicates := usage.FindDuplicateHours(records)
	missing := usage.FindMissingHours(records, usage.ExpectedHours(start, end))
	l := log.Ctx(ctx)
	l.WarnContext(
		ctx,
		"usage coverage mismatch",
		slog.Int("duplicates", len(duplicates)),
		slog.Int("missing", len(missing)),
	)
	for _, k := range duplicates {
		l.DebugContext(ctx, "duplicate hour", slog.String("date", k.Date), slog.String("startTime", k.StartTime))
	}
	for _, k := range missing {
		l.DebugContext(ctx, "missing hour", slog.String("date", k.Date), slog.String("startTime", k.StartTime))
	}
}

// maxExport returns the first record with the highest export.
func maxExport(records []types.Usage) types.Usage {
	best := records[0]
	for _, u := range records[1:] {
		if u.ExportKWH > best.ExportKWH {
			best = u
		}
	}
	return best
}
