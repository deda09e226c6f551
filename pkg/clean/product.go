// pkg/clean/product.go
package clean

import (
	"fmt"

	"retail-etl/pkg/table"
)

const (
	colDateAdded = "date_added"
	colWeight    = "weight"
	colRowIndex  = "index"
)

// ConvertProductWeights rewrites the weight column into kilograms. It
// runs on its own, before CleanProducts, and produces a new table: an
// unparseable weight becomes a missing cell rather than rejecting the
// row, so the cleaner's own passes decide the row's fate.
func (c *Cleaner) ConvertProductWeights(t *table.Table) (*table.Table, error) {
	if err := t.RequireColumns(colWeight); err != nil {
		return nil, fmt.Errorf("product table: %w", err)
	}

	return t.MapColumn(colWeight, func(cell table.Cell) table.Cell {
		if cell == nil {
			return nil
		}
		kg, ok := ConvertWeight(table.CellString(cell))
		if !ok {
			return nil
		}
		return kg
	})
}

// CleanProducts normalizes the products table extracted from object
// storage. The first positional column is the unnamed frame index from
// the CSV export; it gets a proper name before anything else runs.
func (c *Cleaner) CleanProducts(t *table.Table) (*table.Table, error) {
	if t.NumCols() == 0 {
		return nil, fmt.Errorf("product table: %w: %s", table.ErrColumnNotFound, colDateAdded)
	}

	out, err := t.RenameColumnAt(0, colRowIndex)
	if err != nil {
		return nil, err
	}
	if err := out.RequireColumns(colDateAdded); err != nil {
		return nil, fmt.Errorf("product table: %w", err)
	}

	out = DropNullRows(out)

	out, err = keepRows(out, colDateAdded, func(s string) bool {
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

	c.logReduction("product", t, out)
	return out, nil
}
