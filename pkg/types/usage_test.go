package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUsageLabels(t *testing.T) {
	u := Usage{TSHourStart: time.Date(2024, 2, 29, 19, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-02-29", u.Date())
	assert.Equal(t, "19:00", u.StartTime())
	assert.Equal(t, "19:59", u.EndTime())
	assert.Equal(t, HourKey{Date: "2024-02-29", StartTime: "19:00"}, u.Key())

	midnight := Usage{TSHourStart: time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, "23:59", midnight.EndTime())
}

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2023))
	assert.Equal(t, 365, DaysInYear(1900))
	assert.Equal(t, 366, DaysInYear(2000))
}
