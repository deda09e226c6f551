// pkg/clean/filter.go
package clean

import (
	"fmt"
	"regexp"

	"retail-etl/pkg/table"
)

// corruptedToken matches the 10-character alphanumeric codes the
// upstream sources inject into otherwise valid rows: one uppercase
// letter or digit followed by exactly nine alphanumerics, full match.
var corruptedToken = regexp.MustCompile(`^[A-Z0-9][a-zA-Z0-9]{9}$`)

// nullSentinel is the literal string the sources use for missing
// values, distinct from a genuinely absent cell.
const nullSentinel = "NULL"

// Scope selects which columns the row-validity filter inspects.
// The zero value scans every column.
type Scope struct {
	column string
}

// ScanAll scans every column of each row.
func ScanAll() Scope {
	return Scope{}
}

// ScanColumn restricts the scan to a single named column.
func ScanColumn(name string) Scope {
	return Scope{column: name}
}

// IsCorruptedToken reports whether a string has the corrupted-token shape.
func IsCorruptedToken(s string) bool {
	return corruptedToken.MatchString(s)
}

// DropCorruptedRows returns a new table without any row that carries a
// corrupted-token cell within the scanned scope. Cell values are
// compared by their text rendering, so a missing cell (which renders
// empty) can never match.
func DropCorruptedRows(t *table.Table, scope Scope) (*table.Table, error) {
	if scope.column == "" {
		return t.FilterRows(func(row []table.Cell) bool {
			for _, c := range row {
				if IsCorruptedToken(table.CellString(c)) {
					return false
				}
			}
			return true
		}), nil
	}

	idx, ok := t.ColumnIndex(scope.column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", table.ErrColumnNotFound, scope.column)
	}
	return t.FilterRows(func(row []table.Cell) bool {
		return !IsCorruptedToken(table.CellString(row[idx]))
	}), nil
}

// DropNullRows replaces sentinel-"NULL" cells with the missing marker
// and drops every row that has a missing cell in any column.
func DropNullRows(t *table.Table) *table.Table {
	return t.FilterRows(func(row []table.Cell) bool {
		for _, c := range row {
			if c == nil || table.CellString(c) == nullSentinel {
				return false
			}
		}
		return true
	})
}
