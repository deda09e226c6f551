// pkg/clean/events.go
package clean

import (
	"fmt"
	"strconv"
	"strings"

	"retail-etl/pkg/table"
)

const (
	colTimestamp = "timestamp"
	colMonth     = "month"
	colYear      = "year"
	colDay       = "day"
)

// CleanDateEvents normalizes the calendar-event fact table. The year
// upper bound defaults to the calendar year at run time; set
// Options.SnapshotYear for reproducible output across run dates.
func (c *Cleaner) CleanDateEvents(t *table.Table) (*table.Table, error) {
	if err := t.RequireColumns(colTimestamp, colMonth, colYear, colDay); err != nil {
		return nil, fmt.Errorf("date-event table: %w", err)
	}

	out := DropNullRows(t)

	out, err := DropCorruptedRows(out, ScanAll())
	if err != nil {
		return nil, err
	}

	out, err = out.MapColumn(colTimestamp, func(cell table.Cell) table.Cell {
		if cell == nil {
			return nil
		}
		hms, ok := ParseTimeOfDay(table.CellString(cell))
		if !ok {
			return nil
		}
		return hms
	})
	if err != nil {
		return nil, err
	}

	out, err = keepRows(out, colMonth, func(s string) bool {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return err == nil && n >= 1 && n <= 12
	})
	if err != nil {
		return nil, err
	}

	for _, col := range []string{colYear, colDay} {
		out, err = keepRows(out, col, isAllDigits)
		if err != nil {
			return nil, err
		}
	}

	out, err = keepRows(out, colDay, func(s string) bool {
		n, _ := strconv.Atoi(s)
		return n >= 1 && n <= 31
	})
	if err != nil {
		return nil, err
	}

	maxYear := c.runYear()
	out, err = keepRows(out, colYear, func(s string) bool {
		n, _ := strconv.Atoi(s)
		return n >= 1900 && n <= maxYear
	})
	if err != nil {
		return nil, err
	}

	c.logReduction("date-event", t, out)
	return out, nil
}
