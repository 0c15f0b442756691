package usage

import (
	"testing"
	"time"

	"github.com/raterudder/solarsizer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourly(start time.Time, n int) []types.Usage {
	out := make([]types.Usage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.Usage{TSHourStart: start.Add(time.Duration(i) * time.Hour)})
	}
	return out
}

func TestExpectedHours(t *testing.T) {
	start := time.Date(2024, 2, 28, 13, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	expected := ExpectedHours(start, end)
	// leap day included
	assert.Len(t, expected, 3*24)
	assert.Contains(t, expected, types.HourKey{Date: "2024-02-29", StartTime: "23:00"})
	assert.Contains(t, expected, types.HourKey{Date: "2024-02-28", StartTime: "00:00"})
}

func TestFindDuplicateAndMissingHours(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := hourly(start, 24)
	expected := ExpectedHours(start, start)

	assert.Empty(t, FindDuplicateHours(records))
	assert.Empty(t, FindMissingHours(records, expected))

	// drop 05:00 and 07:00, repeat 10:00 twice
	broken := append([]types.Usage{}, records[:5]...)
	broken = append(broken, records[6])
	broken = append(broken, records[8:]...)
	broken = append(broken, records[10], records[10])

	assert.Equal(t, []types.HourKey{
		{Date: "2024-01-01", StartTime: "10:00"},
		{Date: "2024-01-01", StartTime: "10:00"},
	}, FindDuplicateHours(broken))
	assert.Equal(t, []types.HourKey{
		{Date: "2024-01-01", StartTime: "05:00"},
		{Date: "2024-01-01", StartTime: "07:00"},
	}, FindMissingHours(broken, expected))
}

func TestValidateCoverage(t *testing.T) {
	start := time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ValidateCoverage(hourly(start, 366*24), 366))

	err := ValidateCoverage(hourly(start, 366*24-1), 366)
	assert.ErrorIs(t, err, ErrCoverageMismatch)
	assert.Contains(t, err.Error(), "got 8783")

	assert.ErrorIs(t, ValidateCoverage(hourly(start, 366*24), 365), ErrCoverageMismatch)
}

func TestAdjustmentApply(t *testing.T) {
	start := time.Date(2024, 10, 24, 0, 0, 0, 0, time.UTC)
	records := hourly(start, 4*24)
	for i := range records {
		records[i].ImportKWH = 1
	}

	adj := DefaultAdjustments()[0]
	n := adj.Apply(records)
	// 10-24 and 10-25 at 19:00
	assert.Equal(t, 2, n)
	for _, u := range records {
		if u.StartTime() == "19:00" && u.TSHourStart.Before(adj.Before) {
			assert.Equal(t, 10.0, u.ImportKWH, u.Date())
		} else {
			assert.Equal(t, 1.0, u.ImportKWH, u.Date()+" "+u.StartTime())
		}
	}
}
