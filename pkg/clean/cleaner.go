// pkg/clean/cleaner.go
package clean

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"retail-etl/pkg/table"
)

// Options tunes the behaviors that varied across revisions of the
// upstream cleaning rules.
type Options struct {
	// StripStaffNumbers removes non-digit characters from the store
	// staff_numbers column. The earliest rule set did this; later ones
	// dropped it.
	StripStaffNumbers bool

	// SnapshotYear fixes the upper bound for the date-event year check.
	// Zero means "the calendar year at run time", which makes output
	// depend on when the pipeline runs.
	SnapshotYear int
}

// Cleaner holds the per-entity transformation rules that turn raw
// source tables into rows safe to load into the destination schema.
// Every Clean* method is a pure function of its input table.
type Cleaner struct {
	logger *zap.Logger
	opts   Options
}

// NewCleaner creates a Cleaner.
func NewCleaner(logger *zap.Logger, opts Options) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger, opts: opts}, nil
}

// runYear returns the upper bound for the date-event year check.
func (c *Cleaner) runYear() int {
	if c.opts.SnapshotYear > 0 {
		return c.opts.SnapshotYear
	}
	return time.Now().Year()
}

// logReduction records how many rows a cleaning pass removed.
func (c *Cleaner) logReduction(entity string, before, after *table.Table) {
	c.logger.Info("Cleaned table",
		zap.String("entity", entity),
		zap.Int("rowsIn", before.NumRows()),
		zap.Int("rowsOut", after.NumRows()),
		zap.Int("rowsDropped", before.NumRows()-after.NumRows()))
}

// mapStringColumn applies a string transform to a column, passing
// missing cells through untouched.
func mapStringColumn(t *table.Table, col string, fn func(string) string) (*table.Table, error) {
	return t.MapColumn(col, func(c table.Cell) table.Cell {
		if c == nil {
			return nil
		}
		return fn(table.CellString(c))
	})
}

// keepRows drops every row for which keep returns false, judging by a
// single column's text rendering.
func keepRows(t *table.Table, col string, keep func(string) bool) (*table.Table, error) {
	idx, ok := t.ColumnIndex(col)
	if !ok {
		return nil, fmt.Errorf("%w: %s", table.ErrColumnNotFound, col)
	}
	return t.FilterRows(func(row []table.Cell) bool {
		return keep(table.CellString(row[idx]))
	}), nil
}
