// pkg/pipeline/runner.go
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"retail-etl/pkg/extract"
	"retail-etl/pkg/load"
	"retail-etl/pkg/table"
)

// Runner sequences extract -> clean -> load per lane. Lanes run
// strictly one after another and never share state; one lane's failure
// never stops the others.
type Runner struct {
	source extract.Source
	loader load.Loader
	logger *zap.Logger
}

// NewRunner creates a Runner. Both collaborators are injected so tests
// can substitute fakes.
func NewRunner(source extract.Source, loader load.Loader, logger *zap.Logger) (*Runner, error) {
	if source == nil {
		return nil, errors.New("source cannot be nil")
	}
	if loader == nil {
		return nil, errors.New("loader cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Runner{source: source, loader: loader, logger: logger}, nil
}

// Run executes every lane in order and returns the aggregated summary.
func (r *Runner) Run(ctx context.Context, lanes []Lane) *Summary {
	summary := NewSummary()

	for _, lane := range lanes {
		result := r.runLane(ctx, lane)
		summary.Add(*result)
	}

	summary.Complete()
	r.logger.Info("Pipeline run completed",
		zap.Int("successfulLanes", summary.SuccessfulLanes),
		zap.Int("failedLanes", summary.FailedLanes),
		zap.Int("degradedLanes", summary.DegradedLanes),
		zap.Int64("totalRowsLoaded", summary.TotalRowsLoaded),
		zap.Duration("duration", summary.Duration))
	return summary
}

// runLane executes one lane end to end.
func (r *Runner) runLane(ctx context.Context, lane Lane) *Result {
	result := newResult(lane)
	logger := r.logger.With(
		zap.String("entity", lane.Entity),
		zap.String("laneID", lane.ID))

	logger.Info("Starting lane", zap.String("destination", lane.Destination))

	raw, err := r.source.Fetch(ctx, lane.Descriptor)
	if err != nil {
		// Degrade to an empty table rather than aborting the lane. A
		// wholesale-replace loader will then erase the destination, so
		// this is loud on purpose.
		logger.Warn("Source unavailable, continuing with zero rows; destination will be replaced with empty data",
			zap.String("destination", lane.Destination),
			zap.Error(err))
		raw = table.New(lane.Columns...)
		result.Degraded = true
	}
	result.RowsExtracted = raw.NumRows()

	cleaned, err := lane.Clean(raw)
	if err != nil {
		laneErr := &LaneError{Entity: lane.Entity, Category: categorize(err), Err: err}
		logger.Error("Cleaning failed, aborting lane",
			zap.String("category", laneErr.Category.String()),
			zap.Error(err))
		result.fail(laneErr)
		return result
	}
	result.RowsDropped = raw.NumRows() - cleaned.NumRows()

	if err := r.loader.Load(ctx, cleaned, lane.Destination); err != nil {
		laneErr := &LaneError{Entity: lane.Entity, Category: CategoryLoadFailure, Err: err}
		logger.Error("Load failed, aborting lane",
			zap.String("destination", lane.Destination),
			zap.Error(err))
		result.fail(laneErr)
		return result
	}
	result.RowsLoaded = cleaned.NumRows()

	result.complete(true)
	logger.Info("Lane completed",
		zap.Int("rowsExtracted", result.RowsExtracted),
		zap.Int("rowsDropped", result.RowsDropped),
		zap.Int("rowsLoaded", result.RowsLoaded),
		zap.Duration("duration", result.Duration))
	return result
}
