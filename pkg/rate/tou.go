package rate

import (
	"fmt"
	"time"

	"github.com/raterudder/solarsizer/pkg/types"
)

// TOU implements a Time-Of-Use model from a list of rate periods. Prices of
// overlapping periods add up. Hours are resolved once per (month, hour) when
// the model is built so lookups can't fail.
type TOU struct {
	prices       [12][24]float64
	exportCredit float64
}

var _ Model = (*TOU)(nil)

// NewTOU builds a TOU model. The periods must only depend on the month and
// hour of day.
func NewTOU(periods []types.UtilityRatePeriod, exportCredit float64) (*TOU, error) {
	t := &TOU{exportCredit: exportCredit}
	for m := time.January; m <= time.December; m++ {
		for h := 0; h < 24; h++ {
			// a leap year so every month/day exists
			ts := time.Date(2024, m, 1, h, 0, 0, 0, time.UTC)
			var matched bool
			for _, period := range periods {
				contains, err := period.Contains(ts)
				if err != nil {
					return nil, fmt.Errorf("failed to evaluate period %q: %w", period.Description, err)
				}
				if contains {
					t.prices[m-1][h] += period.DollarsPerKWH
					matched = true
				}
			}
			if !matched {
				return nil, fmt.Errorf("no rate period covers %s hour %d", m, h)
			}
		}
	}
	return t, nil
}

func (t *TOU) ImportDollarsPerKWH(ts time.Time) float64 {
	return t.prices[ts.Month()-1][ts.Hour()]
}

func (t *TOU) ExportDollarsPerKWH(time.Time) float64 {
	return t.exportCredit
}

var (
	pgeSummer = []time.Month{time.June, time.July, time.August, time.September}
	pgeWinter = []time.Month{
		time.January, time.February, time.March, time.April, time.May,
		time.October, time.November, time.December,
	}
)

// pgeElectricPeriods returns the E-ELEC energy rates: peak 4-9pm, part-peak
// 3-4pm and 9pm-midnight, off-peak otherwise. Summer is June to September.
func pgeElectricPeriods() []types.UtilityRatePeriod {
	season := func(months []time.Month, peak, partPeak, offPeak float64, name string) []types.UtilityRatePeriod {
		return []types.UtilityRatePeriod{
			{
				UtilityPeriod: types.UtilityPeriod{HourStart: 16, HourEnd: 21, Months: months},
				DollarsPerKWH: peak,
				Description:   name + " Peak",
			},
			{
				UtilityPeriod: types.UtilityPeriod{HourStart: 15, HourEnd: 16, Months: months},
				DollarsPerKWH: partPeak,
				Description:   name + " Part-Peak",
			},
			{
				UtilityPeriod: types.UtilityPeriod{HourStart: 21, HourEnd: 24, Months: months},
				DollarsPerKWH: partPeak,
				Description:   name + " Part-Peak",
			},
			{
				UtilityPeriod: types.UtilityPeriod{HourStart: 0, HourEnd: 15, Months: months},
				DollarsPerKWH: offPeak,
				Description:   name + " Off-Peak",
			},
		}
	}
	periods := season(pgeSummer, 0.616, 0.454, 0.397, "Summer")
	return append(periods, season(pgeWinter, 0.384, 0.362, 0.348, "Winter")...)
}
