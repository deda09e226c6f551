// pkg/clean/orders.go
package clean

import (
	"fmt"

	"retail-etl/pkg/table"
)

// Columns the order source carries but the destination schema does not:
// user identity is joined through a foreign key elsewhere, and "1" is a
// stray artifact of the export.
var orderDroppedColumns = []string{"first_name", "last_name", "1"}

// CleanOrders normalizes the orders fact table. The column drops
// tolerate absence; everything else is mandatory.
func (c *Cleaner) CleanOrders(t *table.Table) (*table.Table, error) {
	out := t.DropColumns(orderDroppedColumns...)

	if err := out.RequireColumns(colCardNumber); err != nil {
		return nil, fmt.Errorf("order table: %w", err)
	}

	out, err := mapStringColumn(out, colCardNumber, StripCardSeparators)
	if err != nil {
		return nil, err
	}

	out, err = keepRows(out, colCardNumber, ValidCardNumber)
	if err != nil {
		return nil, err
	}

	out, err = DropCorruptedRows(out, ScanAll())
	if err != nil {
		return nil, err
	}

	c.logReduction("order", t, out)
	return out, nil
}
