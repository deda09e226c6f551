// pkg/clean/user.go
package clean

import (
	"fmt"

	"retail-etl/pkg/table"
)

// User table columns the cleaner depends on.
const (
	colDateOfBirth = "date_of_birth"
	colJoinDate    = "join_date"
	colPhoneNumber = "phone_number"
	colAddress     = "address"
)

// CleanUsers normalizes the legacy user table. Unparseable dates are
// coerced to missing and their rows kept, unlike the NULL-sentinel pass
// which drops whole rows. That asymmetry is inherited from the source
// rules and deliberately preserved.
func (c *Cleaner) CleanUsers(t *table.Table) (*table.Table, error) {
	if err := t.RequireColumns(colDateOfBirth, colJoinDate, colPhoneNumber, colAddress); err != nil {
		return nil, fmt.Errorf("user table: %w", err)
	}

	out := DropNullRows(t)

	var err error
	for _, col := range []string{colDateOfBirth, colJoinDate} {
		out, err = mapStringColumn(out, col, NormalizeWordedDate)
		if err != nil {
			return nil, err
		}
		out, err = out.MapColumn(col, coerceFlexibleDate)
		if err != nil {
			return nil, err
		}
	}

	out, err = DropCorruptedRows(out, ScanAll())
	if err != nil {
		return nil, err
	}

	out, err = mapStringColumn(out, colPhoneNumber, CleanPhoneNumber)
	if err != nil {
		return nil, err
	}

	out, err = mapStringColumn(out, colAddress, FlattenAddress)
	if err != nil {
		return nil, err
	}

	c.logReduction("user", t, out)
	return out, nil
}

// coerceFlexibleDate re-renders a parseable date cell as YYYY-MM-DD and
// turns anything unparseable into the missing marker.
func coerceFlexibleDate(c table.Cell) table.Cell {
	if c == nil {
		return nil
	}
	parsed, ok := ParseFlexibleDate(table.CellString(c))
	if !ok {
		return nil
	}
	return parsed.Format(isoDate)
}
