package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raterudder/solarsizer/pkg/impute"
	"github.com/raterudder/solarsizer/pkg/install"
	"github.com/raterudder/solarsizer/pkg/rate"
	"github.com/raterudder/solarsizer/pkg/simulate"
	"github.com/raterudder/solarsizer/pkg/sweep"
	"github.com/raterudder/solarsizer/pkg/types"
	"github.com/raterudder/solarsizer/pkg/usage"
)

// Config is a sizing scenario.
type Config struct {
	// DataDir holds the meter exports. Relative reference paths are resolved
	// against it.
	DataDir string `yaml:"data_dir"`

	// ImportReference is the export whose import usage fills the gap.
	ImportReference string `yaml:"import_reference"`
	// ExportReference is the export whose export usage, seasonally scaled,
	// fills the gap.
	ExportReference string `yaml:"export_reference"`

	Gap         Gap                `yaml:"gap"`
	Scaling     Scaling            `yaml:"scaling"`
	Adjustments []usage.Adjustment `yaml:"adjustments"`

	// CoverageDays is the number of days the combined records must cover.
	CoverageDays int `yaml:"coverage_days"`

	Economics install.Economics `yaml:"economics"`
	Costs     simulate.Costs    `yaml:"costs"`
	Rates     Rates             `yaml:"rates"`
	Sweep     Sweep             `yaml:"sweep"`

	// XLSXOut is where the sweep workbook is written. Empty disables it.
	XLSXOut string `yaml:"xlsx_out"`
}

// Gap is the inclusive range of hours without meter data.
type Gap struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// Scaling is the seasonal scaling table keyed by month name.
type Scaling struct {
	Baseline string             `yaml:"baseline"`
	Months   map[string]float64 `yaml:"months"`
}

// Rates selects the rate model.
type Rates struct {
	Plan                string  `yaml:"plan"`
	ImportDollarsPerKWH float64 `yaml:"import_dollars_per_kwh"`
	ExportDollarsPerKWH float64 `yaml:"export_dollars_per_kwh"`
}

// Sweep is the search grid.
type Sweep struct {
	Capacity types.Range `yaml:"capacity"`
	Battery  types.Range `yaml:"battery"`
	// Workers is the number of concurrent evaluations. 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// Default returns the scenario of the reference home: data from 2024-04-15
// onward, with the 2023-11-02 to 2024-04-14 gap imputed.
func Default() Config {
	scaling := Scaling{
		Baseline: time.June.String(),
		Months:   make(map[string]float64, 12),
	}
	table := impute.DefaultSeasonalScaling()
	for m := time.January; m <= time.December; m++ {
		v, _ := table.Value(m)
		scaling.Months[m.String()] = v
	}
	flat := rate.DefaultFlat()
	return Config{
		DataDir:         "data",
		ImportReference: "pge_electric_usage_interval_data_Service 1_1_2024-04-15_to_2024-05-10.csv",
		ExportReference: "pge_electric_usage_interval_data_Service 1_1_2024-06-10_to_2024-07-11.csv",
		Gap: Gap{
			Start: time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.April, 14, 23, 0, 0, 0, time.UTC),
		},
		Scaling:      scaling,
		Adjustments:  usage.DefaultAdjustments(),
		CoverageDays: types.DaysInYear(2024),
		Economics:    install.DefaultEconomics(),
		Costs:        simulate.DefaultCosts(),
		Rates: Rates{
			Plan:                rate.PlanFlat,
			ImportDollarsPerKWH: flat.ImportPrice,
			ExportDollarsPerKWH: flat.ExportCredit,
		},
		Sweep: Sweep{
			Capacity: sweep.DefaultCapacityRange(),
			Battery:  sweep.DefaultBatteryRange(),
		},
	}
}

// Load reads a YAML scenario on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate ensures the scenario can be run.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.ImportReference == "" || c.ExportReference == "" {
		return fmt.Errorf("import_reference and export_reference are required")
	}
	if c.Gap.End.Before(c.Gap.Start) {
		return fmt.Errorf("gap end (%s) is before start (%s)", c.Gap.End, c.Gap.Start)
	}
	if c.CoverageDays <= 0 {
		return fmt.Errorf("coverage_days must be positive: %d", c.CoverageDays)
	}
	if _, err := c.ScalingTable(); err != nil {
		return err
	}
	if err := c.Economics.Validate(); err != nil {
		return fmt.Errorf("invalid economics: %w", err)
	}
	if err := c.Costs.Validate(); err != nil {
		return fmt.Errorf("invalid costs: %w", err)
	}
	if _, err := c.RateModel(); err != nil {
		return err
	}
	if err := c.Sweep.Capacity.Validate(); err != nil {
		return fmt.Errorf("invalid sweep capacity: %w", err)
	}
	if err := c.Sweep.Battery.Validate(); err != nil {
		return fmt.Errorf("invalid sweep battery: %w", err)
	}
	for _, adj := range c.Adjustments {
		if _, err := time.Parse(types.ClockLayout, adj.StartTime); err != nil {
			return fmt.Errorf("invalid adjustment start_time %q: %w", adj.StartTime, err)
		}
	}
	return nil
}

// ReferencePath resolves a reference file against DataDir.
func (c Config) ReferencePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// ScalingTable builds the seasonal scaling table.
func (c Config) ScalingTable() (*impute.SeasonalScaling, error) {
	baseline, err := parseMonth(c.Scaling.Baseline)
	if err != nil {
		return nil, fmt.Errorf("invalid scaling baseline: %w", err)
	}
	values := make(map[time.Month]float64, len(c.Scaling.Months))
	for name, v := range c.Scaling.Months {
		m, err := parseMonth(name)
		if err != nil {
			return nil, fmt.Errorf("invalid scaling month: %w", err)
		}
		if _, ok := values[m]; ok {
			return nil, fmt.Errorf("scaling month %s listed more than once", m)
		}
		values[m] = v
	}
	return impute.NewSeasonalScaling(values, baseline)
}

// RateModel builds the configured rate model.
func (c Config) RateModel() (rate.Model, error) {
	return rate.ForPlan(c.Rates.Plan, c.Rates.ImportDollarsPerKWH, c.Rates.ExportDollarsPerKWH)
}

func parseMonth(name string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month: %q", name)
}
