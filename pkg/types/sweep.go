package types

import (
	"fmt"
	"math"
)

// rangeTolerance absorbs the rounding error of fractional steps like 2/26 so
// the end of a range is still included.
const rangeTolerance = 1e-9

// Range is an inclusive arithmetic progression.
type Range struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Step  float64 `yaml:"step" json:"step"`
}

// Validate ensures the range can be enumerated.
func (r Range) Validate() error {
	if r.Step <= 0 {
		return fmt.Errorf("range step must be positive: %v", r.Step)
	}
	if r.End < r.Start {
		return fmt.Errorf("range end (%v) is before start (%v)", r.End, r.Start)
	}
	return nil
}

// Values returns every value of the range. Each value is computed from the
// start rather than accumulated so later values don't drift.
func (r Range) Values() []float64 {
	if r.Validate() != nil {
		return nil
	}
	n := int(math.Floor((r.End-r.Start)/r.Step + rangeTolerance))
	values := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, r.Start+float64(i)*r.Step)
	}
	return values
}

// SweepResult is the outcome of one (capacity, battery) evaluation.
type SweepResult struct {
	CapacityMultiplier float64 `json:"capacityMultiplier"`
	BatteryCapacityKWH float64 `json:"batteryCapacityKWH"`
	TotalCost          float64 `json:"totalCost"`
}
