// pkg/pipeline/errors.go
package pipeline

import (
	"errors"
	"fmt"

	"retail-etl/pkg/extract"
	"retail-etl/pkg/table"
)

// Category classifies lane failures.
type Category int

const (
	CategoryNone Category = iota
	// CategorySourceUnavailable: the connector could not retrieve data.
	// Degraded to an empty table, lane continues.
	CategorySourceUnavailable
	// CategorySchemaMismatch: an expected column is absent. Fatal for
	// the lane.
	CategorySchemaMismatch
	// CategoryCleaningFailure: the cleaner failed for another reason.
	CategoryCleaningFailure
	// CategoryLoadFailure: the destination write failed. Fatal for the
	// lane, no retry.
	CategoryLoadFailure
)

// String returns a string representation of the category
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "None"
	case CategorySourceUnavailable:
		return "SourceUnavailable"
	case CategorySchemaMismatch:
		return "SchemaMismatch"
	case CategoryCleaningFailure:
		return "CleaningFailure"
	case CategoryLoadFailure:
		return "LoadFailure"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// LaneError ties a failure to the lane it happened in.
type LaneError struct {
	Entity   string
	Category Category
	Err      error
}

// Error implements the error interface
func (e *LaneError) Error() string {
	return fmt.Sprintf("[%s] lane %s: %v", e.Category, e.Entity, e.Err)
}

// Unwrap exposes the wrapped error
func (e *LaneError) Unwrap() error {
	return e.Err
}

// categorize maps a cleaning-stage error to its category.
func categorize(err error) Category {
	switch {
	case errors.Is(err, extract.ErrSourceUnavailable):
		return CategorySourceUnavailable
	case errors.Is(err, table.ErrColumnNotFound):
		return CategorySchemaMismatch
	default:
		return CategoryCleaningFailure
	}
}
