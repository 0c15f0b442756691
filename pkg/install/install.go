package install

import (
	"fmt"
	"math"
)

// Strategy is how the array gets to the requested capacity.
type Strategy string

const (
	// StrategyRelocate moves the existing panels back without adding any.
	StrategyRelocate Strategy = "relocate"
	// StrategyRelocateAndAdd moves the existing panels back and adds new
	// panels for the additional capacity.
	StrategyRelocateAndAdd Strategy = "relocateAndAdd"
	// StrategyJunkAndReplace discards the existing panels and installs only
	// new panels.
	StrategyJunkAndReplace Strategy = "junkAndReplace"
)

// Economics holds the one-time installation costs of reaching a capacity.
type Economics struct {
	// RelocateCost is the cost to move the existing panels back and reuse them.
	RelocateCost float64 `yaml:"relocate_cost"`
	// JunkCost is the cost to discard the existing panels.
	JunkCost float64 `yaml:"junk_cost"`
	// NewPanelCost is the installed cost of each new panel.
	NewPanelCost float64 `yaml:"new_panel_cost"`
	// NewPanelEfficiency is how many old panels one new panel replaces.
	NewPanelEfficiency float64 `yaml:"new_panel_efficiency"`
	// BaselinePanels is the panel count of the original full array.
	BaselinePanels int `yaml:"baseline_panels"`
}

// DefaultEconomics returns the installation economics of the reference home.
func DefaultEconomics() Economics {
	return Economics{
		RelocateCost:       5000,
		JunkCost:           1500,
		NewPanelCost:       1400,
		NewPanelEfficiency: 2.5,
		BaselinePanels:     16,
	}
}

// Validate ensures the economics are usable.
func (e Economics) Validate() error {
	if e.NewPanelEfficiency <= 0 {
		return fmt.Errorf("new panel efficiency must be positive: %v", e.NewPanelEfficiency)
	}
	if e.RelocateCost < 0 || e.JunkCost < 0 || e.NewPanelCost < 0 {
		return fmt.Errorf("installation costs must not be negative")
	}
	if e.BaselinePanels < 0 {
		return fmt.Errorf("baseline panels must not be negative: %d", e.BaselinePanels)
	}
	return nil
}

// Quote is the cheapest way to reach a capacity.
type Quote struct {
	CapacityMultiplier float64  `json:"capacityMultiplier"`
	Cost               float64  `json:"cost"`
	Strategy           Strategy `json:"strategy"`
	NewPanels          int      `json:"newPanels"`
	Description        string   `json:"description"`
}

// newPanelsFor returns how many new panels replace oldEquivalent old panels.
// Below the baseline the count goes negative and the quote gets cheaper.
func (e Economics) newPanelsFor(oldEquivalent float64) int {
	return int(math.Ceil(oldEquivalent / e.NewPanelEfficiency))
}

// CostOfCapacity returns the cheapest one-time cost of reaching a times the
// capacity of the existingPanels currently installed.
func (e Economics) CostOfCapacity(a float64, existingPanels int) Quote {
	n := float64(existingPanels)

	// junk everything and size an all new array to a*n old panels
	junkPanels := e.newPanelsFor(a*n - float64(e.BaselinePanels))
	junk := Quote{
		CapacityMultiplier: a,
		Cost:               e.JunkCost + float64(junkPanels)*e.NewPanelCost,
		Strategy:           StrategyJunkAndReplace,
		NewPanels:          junkPanels,
		Description: fmt.Sprintf(
			"Junking old panels and installing new panels to reach capacity (%d new panels)",
			junkPanels,
		),
	}

	if a <= 1.0 {
		relocate := Quote{
			CapacityMultiplier: a,
			Cost:               e.RelocateCost,
			Strategy:           StrategyRelocate,
			Description:        "Moving old panels back to reach capacity",
		}
		if relocate.Cost < junk.Cost {
			return relocate
		}
		return junk
	}

	addPanels := e.newPanelsFor((a - 1.0) * n)
	relocateAndAdd := Quote{
		CapacityMultiplier: a,
		Cost:               e.RelocateCost + float64(addPanels)*e.NewPanelCost,
		Strategy:           StrategyRelocateAndAdd,
		NewPanels:          addPanels,
		Description: fmt.Sprintf(
			"Moving old panels back and installing new panels to reach capacity (%d new panels)",
			addPanels,
		),
	}
	if relocateAndAdd.Cost < junk.Cost {
		return relocateAndAdd
	}
	return junk
}
