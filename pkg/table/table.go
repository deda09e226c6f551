// pkg/table/table.go
package table

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// ErrColumnNotFound is returned when an operation references a column
// that the table does not have.
var ErrColumnNotFound = errors.New("column not found")

// Cell is a single untyped value extracted from a source. A nil cell is
// the missing-value marker; it renders as the empty string.
type Cell = interface{}

// Table is an ordered set of named columns holding row-aligned cells.
// All transformation methods return a new Table and leave the receiver
// untouched, so each cleaning step stays independently testable.
type Table struct {
	cols []string
	rows [][]Cell
}

// New creates an empty table with the given column names.
func New(cols ...string) *Table {
	t := &Table{
		cols: make([]string, len(cols)),
		rows: make([][]Cell, 0),
	}
	copy(t.cols, cols)
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// IsEmpty reports whether the table holds no rows.
func (t *Table) IsEmpty() bool {
	return len(t.rows) == 0
}

// AppendRow adds a row. The cell count must match the column count.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.cols))
	}
	row := make([]Cell, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.cols {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Get returns the cell at the given row position and column name.
func (t *Table) Get(row int, col string) (Cell, error) {
	idx, ok := t.ColumnIndex(col)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	if row < 0 || row >= len(t.rows) {
		return nil, fmt.Errorf("row %d out of range (%d rows)", row, len(t.rows))
	}
	return t.rows[row][idx], nil
}

// Row returns a copy of the row at the given position.
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.cols...)
	out.rows = make([][]Cell, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = make([]Cell, len(row))
		copy(out.rows[i], row)
	}
	return out
}

// FilterRows returns a new table containing only rows for which keep
// returns true. Rows are passed in column order.
func (t *Table) FilterRows(keep func(row []Cell) bool) *Table {
	out := New(t.cols...)
	for _, row := range t.rows {
		if keep(row) {
			kept := make([]Cell, len(row))
			copy(kept, row)
			out.rows = append(out.rows, kept)
		}
	}
	return out
}

// MapColumn returns a new table with fn applied to every cell of the
// named column.
func (t *Table) MapColumn(name string, fn func(Cell) Cell) (*Table, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	out := t.Clone()
	for _, row := range out.rows {
		row[idx] = fn(row[idx])
	}
	return out, nil
}

// DropColumns returns a new table without the named columns. Absent
// names are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	keepIdx := make([]int, 0, len(t.cols))
	keptCols := make([]string, 0, len(t.cols))
	for i, c := range t.cols {
		if !drop[c] {
			keepIdx = append(keepIdx, i)
			keptCols = append(keptCols, c)
		}
	}

	out := New(keptCols...)
	for _, row := range t.rows {
		kept := make([]Cell, len(keepIdx))
		for j, idx := range keepIdx {
			kept[j] = row[idx]
		}
		out.rows = append(out.rows, kept)
	}
	return out
}

// RenameColumn returns a new table with the named column renamed.
func (t *Table) RenameColumn(oldName, newName string) (*Table, error) {
	idx, ok := t.ColumnIndex(oldName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, oldName)
	}
	out := t.Clone()
	out.cols[idx] = newName
	return out, nil
}

// RenameColumnAt returns a new table with the column at the given
// position renamed.
func (t *Table) RenameColumnAt(idx int, newName string) (*Table, error) {
	if idx < 0 || idx >= len(t.cols) {
		return nil, fmt.Errorf("column index %d out of range (%d columns)", idx, len(t.cols))
	}
	out := t.Clone()
	out.cols[idx] = newName
	return out, nil
}

// RequireColumns verifies that every named column is present.
func (t *Table) RequireColumns(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, n)
		}
	}
	return nil
}

// CellString renders a cell the way it would appear as text. Missing
// cells render as the empty string.
func CellString(c Cell) string {
	if c == nil {
		return ""
	}
	s, err := cast.ToStringE(c)
	if err != nil {
		return fmt.Sprintf("%v", c)
	}
	return s
}
