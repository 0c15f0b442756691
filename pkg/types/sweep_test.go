package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValues(t *testing.T) {
	t.Run("battery grid", func(t *testing.T) {
		r := Range{Start: 0, End: 30, Step: 5}
		assert.Equal(t, []float64{0, 5, 10, 15, 20, 25, 30}, r.Values())
	})

	t.Run("fractional steps include the end", func(t *testing.T) {
		r := Range{Start: 16.0 / 26.0, End: 90.0 / 26.0, Step: 2.0 / 26.0}
		values := r.Values()
		require.Len(t, values, 38)
		assert.InDelta(t, 16.0/26.0, values[0], 1e-12)
		assert.InDelta(t, 1.0, values[5], 1e-12)
		assert.InDelta(t, 90.0/26.0, values[37], 1e-12)
	})

	t.Run("single value", func(t *testing.T) {
		r := Range{Start: 1, End: 1, Step: 1}
		assert.Equal(t, []float64{1}, r.Values())
	})

	t.Run("invalid", func(t *testing.T) {
		assert.Error(t, Range{Start: 0, End: 1, Step: 0}.Validate())
		assert.Error(t, Range{Start: 2, End: 1, Step: 1}.Validate())
		assert.Nil(t, Range{Start: 2, End: 1, Step: 1}.Values())
	})
}
