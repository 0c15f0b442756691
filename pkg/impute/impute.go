package impute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/raterudder/solarsizer/pkg/log"
	"github.com/raterudder/solarsizer/pkg/types"
)

var (
	// ErrInsufficientReference is returned when a reference sequence has no
	// records to draw from.
	ErrInsufficientReference = errors.New("insufficient reference data")
	// ErrInvalidRange is returned for target ranges that are not hour aligned
	// or end before they start.
	ErrInvalidRange = errors.New("invalid target range")
)

// Engine synthesizes hourly usage for periods without meter data.
type Engine struct {
	scaling *SeasonalScaling
}

// NewEngine creates a new Engine using the given scaling table.
func NewEngine(scaling *SeasonalScaling) *Engine {
	return &Engine{scaling: scaling}
}

// Impute returns one record per hour in [start, end] (both inclusive).
//
// Import usage is copied unscaled from importRef, cycling through it. Export
// usage is taken from exportRef at the import cursor modulo len(exportRef) and
// scaled to the target month.
func (e *Engine) Impute(ctx context.Context, importRef, exportRef []types.Usage, start, end time.Time) ([]types.Usage, error) {
	if !start.Equal(start.Truncate(time.Hour)) {
		return nil, fmt.Errorf("%w: start %s is not hour aligned", ErrInvalidRange, start)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, end, start)
	}
	if len(exportRef) == 0 {
		return nil, fmt.Errorf("%w: export reference is empty", ErrInsufficientReference)
	}

	hours := int(end.Sub(start)/time.Hour) + 1
	imputed := make([]types.Usage, 0, hours)

	var importIdx, importWraps int
	for current := start; !current.After(end); current = current.Add(time.Hour) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		factor, err := e.scaling.Factor(current.Month())
		if err != nil {
			return nil, fmt.Errorf("failed to get scaling for %s: %w", current.Format(types.DateLayout), err)
		}

		if importIdx >= len(importRef) {
			return nil, fmt.Errorf("%w: import reference has %d records", ErrInsufficientReference, len(importRef))
		}
		importRecord := importRef[importIdx]
		exportRecord := exportRef[importIdx%len(exportRef)]

		imputed = append(imputed, types.Usage{
			TSHourStart: current,
			ImportKWH:   importRecord.ImportKWH,
			ExportKWH:   exportRecord.ExportKWH * factor,
		})

		importIdx = (importIdx + 1) % len(importRef)
		if importIdx == 0 {
			importWraps++
		}
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"imputed usage",
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("hours", len(imputed)),
		slog.Int("importRefLen", len(importRef)),
		slog.Int("exportRefLen", len(exportRef)),
		slog.Int("importWraps", importWraps),
	)

	return imputed, nil
}
