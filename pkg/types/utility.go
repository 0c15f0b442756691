package types

import (
	"fmt"
	"slices"
	"time"
)

// UtilityPeriod defines a particular schedule for some utility rate.
type UtilityPeriod struct {
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	HourStart     int            `json:"hourStart"`
	HourEnd       int            `json:"hourEnd"`
	Months        []time.Month   `json:"months"`
	DaysOfTheWeek []time.Weekday `json:"daysOfTheWeek"`
	Location      string         `json:"location"`
	LocationPtr   *time.Location `json:"-"`
}

// Contains checks if a time is within the period.
func (p *UtilityPeriod) Contains(t time.Time) (bool, error) {
	if p.LocationPtr != nil {
		t = t.In(p.LocationPtr)
	} else if p.Location != "" {
		loc, err := time.LoadLocation(p.Location)
		if err != nil {
			return false, fmt.Errorf("failed to load location %s: %w", p.Location, err)
		}
		t = t.In(loc)
	}
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false, nil
	}
	if !p.End.IsZero() && t.After(p.End) {
		return false, nil
	}
	if h := t.Hour(); h < p.HourStart || h >= p.HourEnd {
		return false, nil
	}
	if len(p.Months) > 0 && !slices.Contains(p.Months, t.Month()) {
		return false, nil
	}
	if len(p.DaysOfTheWeek) > 0 && !slices.Contains(p.DaysOfTheWeek, t.Weekday()) {
		return false, nil
	}
	return true, nil
}

// UtilityRatePeriod is a period billed at a fixed price.
type UtilityRatePeriod struct {
	UtilityPeriod
	DollarsPerKWH float64 `json:"dollarsPerKWH"`
	Description   string  `json:"description"`
}
