package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/raterudder/solarsizer/pkg/planner"
)

func dollars(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func kwh(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + " kWh"
}

// WriteText writes a human readable summary of plan to w.
func WriteText(w io.Writer, plan planner.Plan) error {
	best := plan.Sweep.Best
	out := plan.Outcome
	lines := []string{
		fmt.Sprintf(
			"Max export hour: %s %s (%s)",
			plan.MaxExport.Date(), plan.MaxExport.StartTime(), kwh(plan.MaxExport.ExportKWH),
		),
		fmt.Sprintf(
			"Records: %s metered, %s imputed, %s adjusted",
			humanize.Comma(int64(plan.MeteredRecords)),
			humanize.Comma(int64(plan.ImputedRecords)),
			humanize.Comma(int64(plan.AdjustedRecords)),
		),
		fmt.Sprintf("Total import: %s", kwh(plan.TotalImportKWH)),
		fmt.Sprintf(
			"Minimum total annual cost: %s for a = %.4f, b = %g kWh",
			dollars(best.TotalCost), best.CapacityMultiplier, best.BatteryCapacityKWH,
		),
		fmt.Sprintf("Installation: %s, %s one-time", plan.Quote.Description, dollars(plan.Quote.Cost)),
		fmt.Sprintf("  Fixed cost:    %s/yr", dollars(out.FixedCost)),
		fmt.Sprintf("  Grid cost:     %s/yr (%s)", dollars(out.GridCost), kwh(out.GridImportKWH)),
		fmt.Sprintf("  Grid credit:   %s/yr (%s)", dollars(out.GridCredit), kwh(out.GridExportKWH)),
		fmt.Sprintf("  Battery cycled: %s", kwh(out.BatteryDischargedKWH)),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
