package types

import "time"

const (
	// DateLayout is the layout of the calendar date of a usage record.
	DateLayout = "2006-01-02"
	// ClockLayout is the layout of the hour boundary labels of a usage record.
	ClockLayout = "15:04"
)

// Usage represents one clock hour of metered (or synthesized) utility usage.
type Usage struct {
	// TSHourStart is the start of the hour. Meter exports carry no zone so the
	// wall clock time is stored as UTC.
	TSHourStart time.Time `json:"tsHourStart"`

	// ImportKWH is the energy drawn from the grid in the hour.
	ImportKWH float64 `json:"importKWH"`
	// ExportKWH is the energy sent to the grid at the reference solar
	// capacity in the hour.
	ExportKWH float64 `json:"exportKWH"`

	// Descriptive pass-through fields from the meter export.
	Type string `json:"type,omitempty"`
	Cost string `json:"cost,omitempty"`
}

// Date returns the calendar date of the hour.
func (u Usage) Date() string {
	return u.TSHourStart.Format(DateLayout)
}

// StartTime returns the label of the first minute of the hour (e.g. 19:00).
func (u Usage) StartTime() string {
	return u.TSHourStart.Format(ClockLayout)
}

// EndTime returns the label of the last minute of the hour (e.g. 19:59).
func (u Usage) EndTime() string {
	return u.TSHourStart.Add(59 * time.Minute).Format(ClockLayout)
}

// HourKey identifies a single hour by its date and start time labels.
type HourKey struct {
	Date      string
	StartTime string
}

// Key returns the HourKey of the record.
func (u Usage) Key() HourKey {
	return HourKey{Date: u.Date(), StartTime: u.StartTime()}
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366 {
		return 366
	}
	return 365
}
