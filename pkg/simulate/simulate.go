package simulate

import (
	"fmt"
	"time"

	"github.com/raterudder/solarsizer/pkg/install"
	"github.com/raterudder/solarsizer/pkg/rate"
	"github.com/raterudder/solarsizer/pkg/types"
)

// Costs are the financial parameters of a simulation.
type Costs struct {
	// CostOfCapital is the inflation-adjusted yearly rate that turns a
	// one-time install cost into an annual cost.
	CostOfCapital float64 `yaml:"cost_of_capital"`
	// BatteryDollarsPerKWH is the install cost of each kWh of battery.
	BatteryDollarsPerKWH float64 `yaml:"battery_dollars_per_kwh"`
	// ExistingPanels is the number of panels currently installed.
	ExistingPanels int `yaml:"existing_panels"`
}

// DefaultCosts returns the costs of the reference home.
func DefaultCosts() Costs {
	return Costs{
		CostOfCapital:        0.03,
		BatteryDollarsPerKWH: 1000,
		ExistingPanels:       26,
	}
}

// Validate ensures the costs are usable.
func (c Costs) Validate() error {
	if c.CostOfCapital < 0 {
		return fmt.Errorf("cost of capital must not be negative: %v", c.CostOfCapital)
	}
	if c.BatteryDollarsPerKWH < 0 {
		return fmt.Errorf("battery cost must not be negative: %v", c.BatteryDollarsPerKWH)
	}
	if c.ExistingPanels < 0 {
		return fmt.Errorf("existing panels must not be negative: %d", c.ExistingPanels)
	}
	return nil
}

// Simulator computes the annual cost of an installation against a year of
// hourly usage. It holds no state between runs and is safe for concurrent use.
type Simulator struct {
	costs     Costs
	economics install.Economics
	rates     rate.Model
}

// NewSimulator creates a new Simulator.
func NewSimulator(costs Costs, economics install.Economics, rates rate.Model) *Simulator {
	return &Simulator{
		costs:     costs,
		economics: economics,
		rates:     rates,
	}
}

// Quote returns the capacity-cost quote for capacity multiplier a.
func (s *Simulator) Quote(a float64) install.Quote {
	return s.economics.CostOfCapacity(a, s.costs.ExistingPanels)
}

// Outcome is the result of simulating one (capacity, battery) pair.
type Outcome struct {
	CapacityMultiplier float64 `json:"capacityMultiplier"`
	BatteryCapacityKWH float64 `json:"batteryCapacityKWH"`

	// FixedCost is the annualized panel and battery install cost.
	FixedCost  float64 `json:"fixedCost"`
	GridCost   float64 `json:"gridCost"`
	GridCredit float64 `json:"gridCredit"`
	// TotalCost is FixedCost + GridCost - GridCredit. It is negative when
	// credits exceed every cost.
	TotalCost float64 `json:"totalCost"`

	ProducedKWH          float64 `json:"producedKWH"`
	ConsumedKWH          float64 `json:"consumedKWH"`
	GridImportKWH        float64 `json:"gridImportKWH"`
	GridExportKWH        float64 `json:"gridExportKWH"`
	BatteryChargedKWH    float64 `json:"batteryChargedKWH"`
	BatteryDischargedKWH float64 `json:"batteryDischargedKWH"`
}

// SimHour represents one hour of simulated energy state.
type SimHour struct {
	TS                   time.Time `json:"ts"`
	ProductionKWH        float64   `json:"productionKWH"`
	ConsumptionKWH       float64   `json:"consumptionKWH"`
	NetProductionKWH     float64   `json:"netProductionKWH"`
	BatteryKWH           float64   `json:"batteryKWH"`
	BatteryChargedKWH    float64   `json:"batteryChargedKWH"`
	BatteryDischargedKWH float64   `json:"batteryDischargedKWH"`
	GridImportKWH        float64   `json:"gridImportKWH"`
	GridExportKWH        float64   `json:"gridExportKWH"`
	ImportDollarsPerKWH  float64   `json:"importDollarsPerKWH"`
	ExportDollarsPerKWH  float64   `json:"exportDollarsPerKWH"`
	RunningCost          float64   `json:"runningCost"`
	HitCapacity          bool      `json:"hitCapacity"`
	HitDeficit           bool      `json:"hitDeficit"`
}

// AnnualCost returns the total annual cost of capacity multiplier a with a
// battery of b kWh.
func (s *Simulator) AnnualCost(records []types.Usage, a, b float64) float64 {
	return s.run(records, a, b, nil).TotalCost
}

// Simulate returns the cost breakdown of capacity multiplier a with a battery
// of b kWh.
func (s *Simulator) Simulate(records []types.Usage, a, b float64) Outcome {
	return s.run(records, a, b, nil)
}

// SimulateHours is Simulate that also returns every simulated hour.
func (s *Simulator) SimulateHours(records []types.Usage, a, b float64) (Outcome, []SimHour) {
	simData := make([]SimHour, 0, len(records))
	outcome := s.run(records, a, b, func(h SimHour) {
		simData = append(simData, h)
	})
	return outcome, simData
}

func (s *Simulator) run(records []types.Usage, a, b float64, observe func(SimHour)) Outcome {
	r := s.costs.CostOfCapital
	out := Outcome{
		CapacityMultiplier: a,
		BatteryCapacityKWH: b,
		FixedCost:          r*s.Quote(a).Cost + r*b*s.costs.BatteryDollarsPerKWH,
	}
	total := out.FixedCost
	bat := battery{capacityKWH: b}

	for _, record := range records {
		production := a * record.ExportKWH
		consumption := record.ImportKWH
		net := production - consumption

		hour := SimHour{
			TS:               record.TSHourStart,
			ProductionKWH:    production,
			ConsumptionKWH:   consumption,
			NetProductionKWH: net,
		}

		if net < 0 {
			// Consumption > Production: drain the battery then buy the rest
			needed := -net
			hour.BatteryDischargedKWH = bat.discharge(needed)
			if grid := needed - hour.BatteryDischargedKWH; grid > 0 {
				hour.ImportDollarsPerKWH = s.rates.ImportDollarsPerKWH(record.TSHourStart)
				hour.GridImportKWH = grid
				hour.HitDeficit = true
				cost := grid * hour.ImportDollarsPerKWH
				out.GridCost += cost
				total += cost
			}
		} else {
			// Production >= Consumption: fill the battery then sell the rest
			hour.BatteryChargedKWH = bat.charge(net)
			if grid := net - hour.BatteryChargedKWH; grid > 0 {
				hour.ExportDollarsPerKWH = s.rates.ExportDollarsPerKWH(record.TSHourStart)
				hour.GridExportKWH = grid
				hour.HitCapacity = true
				credit := grid * hour.ExportDollarsPerKWH
				out.GridCredit += credit
				total -= credit
			}
		}
		hour.BatteryKWH = bat.chargeKWH
		hour.RunningCost = total

		out.ProducedKWH += production
		out.ConsumedKWH += consumption
		out.GridImportKWH += hour.GridImportKWH
		out.GridExportKWH += hour.GridExportKWH
		out.BatteryChargedKWH += hour.BatteryChargedKWH
		out.BatteryDischargedKWH += hour.BatteryDischargedKWH

		if observe != nil {
			observe(hour)
		}
	}

	out.TotalCost = total
	return out
}
