package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostOfCapacity(t *testing.T) {
	e := DefaultEconomics()

	t.Run("Junk When No New Panels Needed", func(t *testing.T) {
		q := e.CostOfCapacity(16.0/26.0, 26)
		assert.Equal(t, StrategyJunkAndReplace, q.Strategy)
		assert.Equal(t, 0, q.NewPanels)
		assert.Equal(t, 1500.0, q.Cost)
	})

	t.Run("Relocate At Existing Capacity", func(t *testing.T) {
		// junking needs ceil(10/2.5) = 4 new panels: 1500 + 5600 = 7100
		q := e.CostOfCapacity(1.0, 26)
		assert.Equal(t, StrategyRelocate, q.Strategy)
		assert.Equal(t, 5000.0, q.Cost)
		assert.Equal(t, 0, q.NewPanels)
		assert.Equal(t, "Moving old panels back to reach capacity", q.Description)
	})

	t.Run("Relocate And Add", func(t *testing.T) {
		// add: ceil(26/2.5) = 11 -> 5000 + 15400
		// junk: ceil(36/2.5) = 15 -> 1500 + 21000
		q := e.CostOfCapacity(2.0, 26)
		assert.Equal(t, StrategyRelocateAndAdd, q.Strategy)
		assert.Equal(t, 11, q.NewPanels)
		assert.Equal(t, 20400.0, q.Cost)
		assert.Contains(t, q.Description, "11 new panels")
	})

	t.Run("Junk Wins When Relocation Is Expensive", func(t *testing.T) {
		pricey := e
		pricey.RelocateCost = 50000
		q := pricey.CostOfCapacity(3.0, 26)
		// junk: ceil(62/2.5) = 25 -> 1500 + 35000
		assert.Equal(t, StrategyJunkAndReplace, q.Strategy)
		assert.Equal(t, 25, q.NewPanels)
		assert.Equal(t, 36500.0, q.Cost)
		assert.Contains(t, q.Description, "25 new panels")
	})

	t.Run("Ties Go To Junk", func(t *testing.T) {
		tied := e
		tied.RelocateCost = 1500
		q := tied.CostOfCapacity(16.0/26.0, 26)
		assert.Equal(t, StrategyJunkAndReplace, q.Strategy)
	})

	t.Run("Ties Go To Junk Above Existing Capacity", func(t *testing.T) {
		// add: 7100 + 11*1400 = 22500, junk: 1500 + 15*1400 = 22500
		tied := e
		tied.RelocateCost = 7100
		q := tied.CostOfCapacity(2.0, 26)
		assert.Equal(t, StrategyJunkAndReplace, q.Strategy)
		assert.Equal(t, 15, q.NewPanels)
		assert.Equal(t, 22500.0, q.Cost)
	})

	t.Run("Below Baseline Capacity", func(t *testing.T) {
		// ceil((6.5-16)/2.5) = -3 -> 1500 - 4200
		q := e.CostOfCapacity(0.25, 26)
		assert.Equal(t, StrategyJunkAndReplace, q.Strategy)
		assert.Equal(t, -3, q.NewPanels)
		assert.Equal(t, -2700.0, q.Cost)
	})
}

func TestEconomicsValidate(t *testing.T) {
	assert.NoError(t, DefaultEconomics().Validate())

	e := DefaultEconomics()
	e.NewPanelEfficiency = 0
	assert.Error(t, e.Validate())

	e = DefaultEconomics()
	e.JunkCost = -1
	assert.Error(t, e.Validate())
}
