package simulate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/raterudder/solarsizer/pkg/install"
	"github.com/raterudder/solarsizer/pkg/rate"
	"github.com/raterudder/solarsizer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator() *Simulator {
	return NewSimulator(DefaultCosts(), install.DefaultEconomics(), rate.DefaultFlat())
}

func hours(start time.Time, values ...[2]float64) []types.Usage {
	out := make([]types.Usage, 0, len(values))
	for i, v := range values {
		out = append(out, types.Usage{
			TSHourStart: start.Add(time.Duration(i) * time.Hour),
			ImportKWH:   v[0],
			ExportKWH:   v[1],
		})
	}
	return out
}

func TestAnnualCost(t *testing.T) {
	s := newTestSimulator()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Shortfall Bought From Grid", func(t *testing.T) {
		records := hours(start, [2]float64{10, 0})
		fixed := 0.03 * s.Quote(1.0).Cost
		assert.InDelta(t, fixed+10*0.45, s.AnnualCost(records, 1.0, 0), 1e-9)
		// relocation at a = 1.0
		assert.InDelta(t, 150+4.5, s.AnnualCost(records, 1.0, 0), 1e-9)
	})

	t.Run("Surplus Sold To Grid", func(t *testing.T) {
		records := hours(start, [2]float64{1, 5})
		// produce 5, consume 1, no battery: sell 4
		assert.InDelta(t, 150-4*0.04, s.AnnualCost(records, 1.0, 0), 1e-9)
	})

	t.Run("Battery Carries Surplus Forward", func(t *testing.T) {
		records := hours(start,
			[2]float64{0, 8}, // charge 5, sell 3
			[2]float64{6, 0}, // draw 5, buy 1
		)
		fixed := 150 + 0.03*5*1000
		out := s.Simulate(records, 1.0, 5)
		assert.InDelta(t, fixed, out.FixedCost, 1e-9)
		assert.InDelta(t, 3*0.04, out.GridCredit, 1e-9)
		assert.InDelta(t, 1*0.45, out.GridCost, 1e-9)
		assert.InDelta(t, fixed+0.45-0.12, out.TotalCost, 1e-9)
		assert.InDelta(t, 5.0, out.BatteryChargedKWH, 1e-9)
		assert.InDelta(t, 5.0, out.BatteryDischargedKWH, 1e-9)
		assert.InDelta(t, 1.0, out.GridImportKWH, 1e-9)
		assert.InDelta(t, 3.0, out.GridExportKWH, 1e-9)
		assert.Equal(t, out.TotalCost, s.AnnualCost(records, 1.0, 5))
	})

	t.Run("Capacity Multiplier Scales Production", func(t *testing.T) {
		records := hours(start, [2]float64{3, 2})
		// a = 2: produce 4, sell 1
		out := s.Simulate(records, 2.0, 0)
		assert.InDelta(t, 4.0, out.ProducedKWH, 1e-9)
		assert.InDelta(t, 1.0, out.GridExportKWH, 1e-9)
		assert.InDelta(t, 0.03*s.Quote(2.0).Cost-0.04, out.TotalCost, 1e-9)
	})

	t.Run("Net Credit Can Be Negative", func(t *testing.T) {
		cheap := NewSimulator(Costs{ExistingPanels: 26}, install.DefaultEconomics(), rate.DefaultFlat())
		records := hours(start, [2]float64{0, 100})
		assert.InDelta(t, -4.0, cheap.AnnualCost(records, 1.0, 0), 1e-9)
	})

	t.Run("Empty Records", func(t *testing.T) {
		assert.InDelta(t, 150.0, s.AnnualCost(nil, 1.0, 0), 1e-9)
	})

	t.Run("Uses Rate Model", func(t *testing.T) {
		tou, err := rate.ForPlan(rate.PlanPGEElectric, 0, 0.04)
		require.NoError(t, err)
		ts := NewSimulator(DefaultCosts(), install.DefaultEconomics(), tou)
		peak := time.Date(2024, 7, 1, 17, 0, 0, 0, time.UTC)
		records := hours(peak, [2]float64{1, 0})
		assert.InDelta(t, 150+0.616, ts.AnnualCost(records, 1.0, 0), 1e-9)
	})
}

func randomYear(seed int64, n int) []types.Usage {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.Usage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.Usage{
			TSHourStart: start.Add(time.Duration(i) * time.Hour),
			ImportKWH:   rng.Float64() * 3,
			ExportKWH:   rng.Float64() * 4,
		})
	}
	return out
}

func TestSimulateIdempotent(t *testing.T) {
	s := newTestSimulator()
	records := randomYear(1, 24*30)
	first := s.AnnualCost(records, 1.5, 10)
	second := s.AnnualCost(records, 1.5, 10)
	assert.Equal(t, first, second)

	outcome, _ := s.SimulateHours(records, 1.5, 10)
	assert.Equal(t, first, outcome.TotalCost)
}

func TestBatteryBounds(t *testing.T) {
	s := newTestSimulator()
	for _, b := range []float64{0, 0.5, 5, 30} {
		outcome, simData := s.SimulateHours(randomYear(int64(b*10)+7, 24*60), 1.2, b)
		require.Len(t, simData, 24*60)
		for _, h := range simData {
			assert.GreaterOrEqual(t, h.BatteryKWH, 0.0)
			assert.LessOrEqual(t, h.BatteryKWH, b)
		}
		assert.InDelta(t, outcome.TotalCost, simData[len(simData)-1].RunningCost, 1e-9)
	}
}

func TestBatteryCostUnderConstantSurplus(t *testing.T) {
	s := newTestSimulator()
	// production always exceeds consumption
	records := make([]types.Usage, 0, 48)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 48; i++ {
		records = append(records, types.Usage{
			TSHourStart: start.Add(time.Duration(i) * time.Hour),
			ImportKWH:   1,
			ExportKWH:   2 + float64(i%3),
		})
	}
	// each step adds 5 kWh of battery: its annualized cost plus the credit of
	// the 5 kWh that stays stored instead of being sold
	addedFixed := 0.03 * 5 * DefaultCosts().BatteryDollarsPerKWH
	lostCredit := 5 * rate.DefaultFlat().ExportCredit
	prev := s.AnnualCost(records, 1.0, 0)
	for b := 5.0; b <= 30; b += 5 {
		cost := s.AnnualCost(records, 1.0, b)
		assert.LessOrEqual(t, cost-prev, addedFixed+lostCredit+1e-9)
		assert.InDelta(t, addedFixed+lostCredit, cost-prev, 1e-9)
		prev = cost
	}
}

func TestBattery(t *testing.T) {
	b := battery{capacityKWH: 10}
	assert.Equal(t, 4.0, b.charge(4))
	assert.Equal(t, 6.0, b.charge(9))
	assert.Equal(t, 10.0, b.chargeKWH)
	assert.Equal(t, 0.0, b.charge(1))

	assert.Equal(t, 3.0, b.discharge(3))
	assert.Equal(t, 7.0, b.discharge(20))
	assert.Equal(t, 0.0, b.chargeKWH)
	assert.Equal(t, 0.0, b.discharge(1))
}

func TestCostsValidate(t *testing.T) {
	assert.NoError(t, DefaultCosts().Validate())
	assert.Error(t, Costs{CostOfCapital: -1}.Validate())
	assert.Error(t, Costs{BatteryDollarsPerKWH: -1}.Validate())
	assert.Error(t, Costs{ExistingPanels: -1}.Validate())
}
