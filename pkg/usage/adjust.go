package usage

import (
	"time"

	"github.com/raterudder/solarsizer/pkg/types"
)

// Adjustment adds a fixed amount of import usage to one hour of every day
// before a cutoff. It models load the meter history doesn't show, like EV
// charging that has since moved elsewhere.
type Adjustment struct {
	Description string    `yaml:"description"`
	StartTime   string    `yaml:"start_time"`
	Before      time.Time `yaml:"before"`
	ImportKWH   float64   `yaml:"import_kwh"`
}

// DefaultAdjustments returns 9 kWh of EV charging at 19:00 until 2024-10-26.
func DefaultAdjustments() []Adjustment {
	return []Adjustment{
		{
			Description: "EV charging",
			StartTime:   "19:00",
			Before:      time.Date(2024, time.October, 26, 0, 0, 0, 0, time.UTC),
			ImportKWH:   9,
		},
	}
}

// Apply adds the adjustment to matching records in place and returns how many
// records matched.
func (a Adjustment) Apply(records []types.Usage) int {
	var n int
	for i := range records {
		if records[i].StartTime() == a.StartTime && records[i].TSHourStart.Before(a.Before) {
			records[i].ImportKWH += a.ImportKWH
			n++
		}
	}
	return n
}
