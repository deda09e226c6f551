package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-etl/pkg/table"
)

func TestIsCorruptedToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"AB12345678", true},  // uppercase lead
		{"0XK9QZM4LP", true},  // digit lead
		{"X9ABCDEFGH", true},  // mixed
		{"ab12345678", false}, // lowercase lead
		{"AB1234567", false},  // 9 chars
		{"AB123456789", false}, // 11 chars
		{"AB12-45678", false}, // non-alnum
		{"", false},
		{"NULL", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCorruptedToken(tt.in), "input %q", tt.in)
	}
}

func TestDropCorruptedRowsAllColumns(t *testing.T) {
	tbl := table.New("id", "note")
	require.NoError(t, tbl.AppendRow("1", "fine"))
	require.NoError(t, tbl.AppendRow("AB12345678", "fine"))
	require.NoError(t, tbl.AppendRow("3", "ZZ99XY12QP"))
	require.NoError(t, tbl.AppendRow("4", nil)) // missing renders empty, never matches

	out, err := DropCorruptedRows(tbl, ScanAll())
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumRows())

	v, err := out.Get(0, "id")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestDropCorruptedRowsSingleColumn(t *testing.T) {
	tbl := table.New("id", "note")
	require.NoError(t, tbl.AppendRow("AB12345678", "fine"))
	require.NoError(t, tbl.AppendRow("2", "ZZ99XY12QP"))

	out, err := DropCorruptedRows(tbl, ScanColumn("id"))
	require.NoError(t, err)
	// Only the id column is scanned; the corrupted note survives.
	assert.Equal(t, 1, out.NumRows())

	v, err := out.Get(0, "id")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestDropCorruptedRowsUnknownScopeColumn(t *testing.T) {
	tbl := table.New("id")
	_, err := DropCorruptedRows(tbl, ScanColumn("ghost"))
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestDropCorruptedRowsIdempotent(t *testing.T) {
	tbl := table.New("id", "note")
	require.NoError(t, tbl.AppendRow("1", "ok"))
	require.NoError(t, tbl.AppendRow("AB12345678", "ok"))
	require.NoError(t, tbl.AppendRow("3", "also ok"))

	once, err := DropCorruptedRows(tbl, ScanAll())
	require.NoError(t, err)
	twice, err := DropCorruptedRows(once, ScanAll())
	require.NoError(t, err)

	assert.Equal(t, once.NumRows(), twice.NumRows())
	for i := 0; i < once.NumRows(); i++ {
		assert.Equal(t, once.Row(i), twice.Row(i))
	}
}

func TestDropNullRows(t *testing.T) {
	tbl := table.New("a", "b")
	require.NoError(t, tbl.AppendRow("1", "x"))
	require.NoError(t, tbl.AppendRow("NULL", "y"))
	require.NoError(t, tbl.AppendRow("3", nil))

	out := DropNullRows(tbl)
	assert.Equal(t, 1, out.NumRows())

	v, err := out.Get(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}
