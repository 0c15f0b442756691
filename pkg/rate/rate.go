package rate

import (
	"fmt"
	"time"
)

const (
	// PlanFlat bills every hour at one import price.
	PlanFlat = "flat"
	// PlanPGEElectric is the PG&E E-ELEC time-of-use schedule.
	PlanPGEElectric = "pge-e-elec"
)

// Model prices grid energy for a given hour.
type Model interface {
	// ImportDollarsPerKWH returns the cost of buying energy from the grid.
	ImportDollarsPerKWH(ts time.Time) float64
	// ExportDollarsPerKWH returns the credit for selling energy to the grid.
	ExportDollarsPerKWH(ts time.Time) float64
}

// Flat bills every hour at the same import price and export credit.
type Flat struct {
	ImportPrice  float64
	ExportCredit float64
}

var _ Model = Flat{}

// DefaultFlat returns the flat rates the optimizer assumes: grid energy at
// 0.45 $/kWh and PG&E export credit at 0.04 $/kWh.
func DefaultFlat() Flat {
	return Flat{ImportPrice: 0.45, ExportCredit: 0.04}
}

func (f Flat) ImportDollarsPerKWH(time.Time) float64 {
	return f.ImportPrice
}

func (f Flat) ExportDollarsPerKWH(time.Time) float64 {
	return f.ExportCredit
}

// ForPlan returns the model for a named plan. exportCredit is used for every
// plan since none of them vary the export credit by hour.
func ForPlan(plan string, importPrice, exportCredit float64) (Model, error) {
	switch plan {
	case PlanFlat, "":
		return Flat{ImportPrice: importPrice, ExportCredit: exportCredit}, nil
	case PlanPGEElectric:
		return NewTOU(pgeElectricPeriods(), exportCredit)
	default:
		return nil, fmt.Errorf("unsupported rate plan: %s", plan)
	}
}
