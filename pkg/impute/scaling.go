package impute

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMonthNotFound is returned when a month is missing from a scaling table.
	ErrMonthNotFound = errors.New("month not found in scaling table")
)

// SeasonalScaling maps each calendar month to a positive scaling constant
// (the solar production of that month at the reference array). Export usage
// recorded in the baseline month is scaled by scale(month)/scale(baseline).
// It is immutable after construction.
type SeasonalScaling struct {
	values   map[time.Month]float64
	baseline time.Month
}

// DefaultSeasonalScaling returns the monthly AC energy production of the
// reference array with June as the baseline month.
func DefaultSeasonalScaling() *SeasonalScaling {
	s, err := NewSeasonalScaling(map[time.Month]float64{
		time.January:   327,
		time.February:  352,
		time.March:     560,
		time.April:     630,
		time.May:       688,
		time.June:      747,
		time.July:      757,
		time.August:    724,
		time.September: 610,
		time.October:   504,
		time.November:  391,
		time.December:  330,
	}, time.June)
	if err != nil {
		panic(fmt.Errorf("invalid default scaling table: %w", err))
	}
	return s
}

// NewSeasonalScaling copies values into a new table. Every calendar month must
// be present with a positive value.
func NewSeasonalScaling(values map[time.Month]float64, baseline time.Month) (*SeasonalScaling, error) {
	s := &SeasonalScaling{
		values:   make(map[time.Month]float64, 12),
		baseline: baseline,
	}
	for m := time.January; m <= time.December; m++ {
		v, ok := values[m]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMonthNotFound, m)
		}
		if v <= 0 {
			return nil, fmt.Errorf("scaling for %s must be positive: %v", m, v)
		}
		s.values[m] = v
	}
	if _, ok := s.values[baseline]; !ok {
		return nil, fmt.Errorf("%w: baseline %s", ErrMonthNotFound, baseline)
	}
	return s, nil
}

// Baseline returns the month the table is calibrated against.
func (s *SeasonalScaling) Baseline() time.Month {
	return s.baseline
}

// Value returns the raw scaling constant for the month.
func (s *SeasonalScaling) Value(m time.Month) (float64, error) {
	v, ok := s.values[m]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMonthNotFound, m)
	}
	return v, nil
}

// Factor returns scale(m)/scale(baseline).
func (s *SeasonalScaling) Factor(m time.Month) (float64, error) {
	v, err := s.Value(m)
	if err != nil {
		return 0, err
	}
	base, err := s.Value(s.baseline)
	if err != nil {
		return 0, err
	}
	return v / base, nil
}
