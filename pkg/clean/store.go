// pkg/clean/store.go
package clean

import (
	"fmt"

	"retail-etl/pkg/table"
)

const (
	colLatitude     = "latitude"
	colLatitudeDup  = "lat"
	colContinent    = "continent"
	colOpeningDate  = "opening_date"
	colStaffNumbers = "staff_numbers"
)

// CleanStores normalizes the store-details table fetched from the
// stores API.
func (c *Cleaner) CleanStores(t *table.Table) (*table.Table, error) {
	if err := t.RequireColumns(colContinent, colOpeningDate, colAddress, colStaffNumbers); err != nil {
		return nil, fmt.Errorf("store table: %w", err)
	}

	out, err := reconcileLatitude(t)
	if err != nil {
		return nil, err
	}

	out = DropNullRows(out)

	out, err = keepRows(out, colOpeningDate, func(s string) bool {
		_, ok := ParseISODate(s)
		return ok
	})
	if err != nil {
		return nil, err
	}

	out, err = DropCorruptedRows(out, ScanAll())
	if err != nil {
		return nil, err
	}

	out, err = mapStringColumn(out, colAddress, FlattenAddress)
	if err != nil {
		return nil, err
	}

	out, err = mapStringColumn(out, colContinent, RepairContinent)
	if err != nil {
		return nil, err
	}

	if c.opts.StripStaffNumbers {
		out, err = mapStringColumn(out, colStaffNumbers, DigitsOnly)
		if err != nil {
			return nil, err
		}
	}

	c.logReduction("store", t, out)
	return out, nil
}

// reconcileLatitude collapses the two latitude columns the source
// duplicates ("lat" and "latitude") into one canonical latitude column.
// The second-seen column's values win and the duplicate is discarded.
// Tables with a single latitude column pass through unchanged.
func reconcileLatitude(t *table.Table) (*table.Table, error) {
	i1, ok1 := t.ColumnIndex(colLatitudeDup)
	i2, ok2 := t.ColumnIndex(colLatitude)
	switch {
	case ok1 && ok2:
		// Both present, reconcile below.
	case ok2:
		return t, nil
	case ok1:
		return t.RenameColumn(colLatitudeDup, colLatitude)
	default:
		return nil, fmt.Errorf("store table: %w: %s", table.ErrColumnNotFound, colLatitude)
	}

	first, second := i1, i2
	if i2 < i1 {
		first, second = i2, i1
	}

	winner := t.Columns()[second]
	loser := t.Columns()[first]

	// Keep the winning column's values under the canonical name and
	// drop the duplicate.
	out := t.DropColumns(loser)
	if winner != colLatitude {
		var err error
		out, err = out.RenameColumn(winner, colLatitude)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
