package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/raterudder/solarsizer/pkg/planner"
)

const (
	summarySheet = "summary"
	sweepSheet   = "sweep"
)

// WriteXLSX writes plan as a workbook with a summary sheet and the sweep grid.
// Grid rows are capacity multipliers and columns are battery sizes.
func WriteXLSX(w io.Writer, plan planner.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(sweepSheet); err != nil {
		return err
	}

	best := plan.Sweep.Best
	summary := [][2]any{
		{"Solar Sizing", nil},
		{nil, nil},
		{"Max Export Date", plan.MaxExport.Date()},
		{"Max Export Start", plan.MaxExport.StartTime()},
		{"Max Export (kWh)", plan.MaxExport.ExportKWH},
		{"Total Import (kWh)", plan.TotalImportKWH},
		{"Capacity Multiplier", best.CapacityMultiplier},
		{"Battery (kWh)", best.BatteryCapacityKWH},
		{"Total Annual Cost", best.TotalCost},
		{"Fixed Cost", plan.Outcome.FixedCost},
		{"Grid Cost", plan.Outcome.GridCost},
		{"Grid Credit", plan.Outcome.GridCredit},
		{"Strategy", string(plan.Quote.Strategy)},
		{"New Panels", plan.Quote.NewPanels},
		{"Installation Cost", plan.Quote.Cost},
	}
	cw := &cellWriter{f: f}
	for i, kv := range summary {
		row := i + 1
		if kv[0] != nil {
			cw.set(summarySheet, fmt.Sprintf("A%d", row), kv[0])
		}
		if kv[1] != nil {
			cw.set(summarySheet, fmt.Sprintf("B%d", row), kv[1])
		}
	}

	grid := plan.Sweep.Grid
	cw.set(sweepSheet, "A1", "Capacity \\ Battery (kWh)")
	for j, b := range grid.Batteries {
		cw.setAt(sweepSheet, j+2, 1, b)
	}
	for i, a := range grid.Capacities {
		row := i + 2
		cw.setAt(sweepSheet, 1, row, a)
		if i >= len(grid.Costs) {
			continue
		}
		for j, cost := range grid.Costs[i] {
			cw.setAt(sweepSheet, j+2, row, cost)
		}
	}
	if cw.err != nil {
		return cw.err
	}

	return f.Write(w)
}

// cellWriter writes cells until the first failure and keeps that error.
type cellWriter struct {
	f   *excelize.File
	err error
}

func (c *cellWriter) set(sheet, cell string, v any) {
	if c.err != nil {
		return
	}
	if err := c.f.SetCellValue(sheet, cell, v); err != nil {
		c.err = fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
}

func (c *cellWriter) setAt(sheet string, col, row int, v any) {
	if c.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		c.err = err
		return
	}
	c.set(sheet, cell, v)
}
