package usage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/raterudder/solarsizer/pkg/types"
)

var (
	// ErrCoverageMismatch is returned when a year of records doesn't have
	// exactly one record per hour.
	ErrCoverageMismatch = errors.New("usage does not cover a full year")
)

// ExpectedHours returns every hour of the days from start to end (both
// inclusive, times ignored).
func ExpectedHours(start, end time.Time) map[types.HourKey]struct{} {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	expected := make(map[types.HourKey]struct{})
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		for h := 0; h < 24; h++ {
			u := types.Usage{TSHourStart: day.Add(time.Duration(h) * time.Hour)}
			expected[u.Key()] = struct{}{}
		}
	}
	return expected
}

// FindDuplicateHours returns the hours that appear more than once, once for
// every repeat, in record order.
func FindDuplicateHours(records []types.Usage) []types.HourKey {
	seen := make(map[types.HourKey]struct{}, len(records))
	var duplicates []types.HourKey
	for _, u := range records {
		key := u.Key()
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, key)
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}

// FindMissingHours returns the expected hours without a record, sorted.
func FindMissingHours(records []types.Usage, expected map[types.HourKey]struct{}) []types.HourKey {
	actual := make(map[types.HourKey]struct{}, len(records))
	for _, u := range records {
		actual[u.Key()] = struct{}{}
	}
	var missing []types.HourKey
	for key := range expected {
		if _, ok := actual[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Date != missing[j].Date {
			return missing[i].Date < missing[j].Date
		}
		return missing[i].StartTime < missing[j].StartTime
	})
	return missing
}

// ValidateCoverage ensures records has exactly days*24 entries.
func ValidateCoverage(records []types.Usage, days int) error {
	if want := days * 24; len(records) != want {
		return fmt.Errorf("%w: got %d hourly records, want %d (%d days)", ErrCoverageMismatch, len(records), want, days)
	}
	return nil
}
