package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retail-etl/pkg/table"
)

func newTestCleaner(t *testing.T, opts Options) *Cleaner {
	t.Helper()
	c, err := NewCleaner(zap.NewNop(), opts)
	require.NoError(t, err)
	return c
}

func mustAppend(t *testing.T, tbl *table.Table, cells ...table.Cell) {
	t.Helper()
	require.NoError(t, tbl.AppendRow(cells...))
}

func cell(t *testing.T, tbl *table.Table, row int, col string) table.Cell {
	t.Helper()
	v, err := tbl.Get(row, col)
	require.NoError(t, err)
	return v
}

func TestNewCleanerRequiresLogger(t *testing.T) {
	_, err := NewCleaner(nil, Options{})
	assert.Error(t, err)
}

func TestCleanUsers(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("user_uuid", "date_of_birth", "join_date", "phone_number", "address")
	// Corrupted key: whole row dropped.
	mustAppend(t, tbl, "AB12345678", "1990-06-15", "2015-01-02", "0121 496 0999", "1 High St")
	// Valid row with a worded birth date.
	mustAppend(t, tbl, "good-user-1", "1968 July 01", "2015-01-02", "+44.0121x99", "1 High St\nLeeds")
	// Sentinel NULL: whole row dropped.
	mustAppend(t, tbl, "good-user-2", "NULL", "2015-01-02", "123", "x")
	// Unparseable join date: coerced to missing, row kept.
	mustAppend(t, tbl, "good-user-3", "1990-06-15", "sometime", "0123", "y")

	out, err := c.CleanUsers(tbl)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	assert.Equal(t, "good-user-1", cell(t, out, 0, "user_uuid"))
	assert.Equal(t, "1968-07-01", cell(t, out, 0, "date_of_birth"))
	assert.Equal(t, "440121", cell(t, out, 0, "phone_number"))
	assert.Equal(t, "1 High St Leeds", cell(t, out, 0, "address"))

	assert.Equal(t, "good-user-3", cell(t, out, 1, "user_uuid"))
	assert.Nil(t, cell(t, out, 1, "join_date"), "unparseable date survives as missing")
}

func TestCleanUsersMissingColumn(t *testing.T) {
	c := newTestCleaner(t, Options{})
	_, err := c.CleanUsers(table.New("user_uuid"))
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestCleanCards(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("card_number", "expiry_date", "date_payment_confirmed")
	mustAppend(t, tbl, "123456789012", "09/26", "2021-03-04")        // kept
	mustAppend(t, tbl, "12345678901", "09/26", "2021-03-04")         // 11 digits, dropped
	mustAppend(t, tbl, "123456789012", "09/26", "4th March 2021")    // bad date, dropped
	mustAppend(t, tbl, "1234,5678,9012", "09/26", "2021-03-04")      // commas, dropped: no coercion here
	mustAppend(t, tbl, "NULL", "09/26", "2021-03-04")                // sentinel, dropped

	out, err := c.CleanCards(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, "123456789012", cell(t, out, 0, "card_number"))
}

func TestCleanStores(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("address", "continent", "lat", "latitude", "opening_date", "staff_numbers")
	mustAppend(t, tbl, "2 Low Rd\nYork", "eeEurope", "0.0", "53.96", "2002-11-28", "38")
	mustAppend(t, tbl, "ok", "America", "1.1", "40.71", "28/11/2002", "12") // loose date, dropped
	mustAppend(t, tbl, "ok", "Europe", "2.2", "51.50", "2010-01-01", "QZV8T1KQ9L") // corrupted, dropped

	out, err := c.CleanStores(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())

	assert.False(t, out.HasColumn("lat"), "duplicate latitude column removed")
	assert.Equal(t, "53.96", cell(t, out, 0, "latitude"), "second-seen latitude wins")
	assert.Equal(t, "Europe", cell(t, out, 0, "continent"))
	assert.Equal(t, "2 Low Rd York", cell(t, out, 0, "address"))
	assert.Equal(t, "38", cell(t, out, 0, "staff_numbers"))
}

func TestCleanStoresStaffNumberStripIsOptional(t *testing.T) {
	tbl := table.New("address", "continent", "latitude", "opening_date", "staff_numbers")
	mustAppend(t, tbl, "a", "Europe", "1.0", "2002-11-28", "3o8")

	out, err := newTestCleaner(t, Options{}).CleanStores(tbl)
	require.NoError(t, err)
	assert.Equal(t, "3o8", cell(t, out, 0, "staff_numbers"))

	out, err = newTestCleaner(t, Options{StripStaffNumbers: true}).CleanStores(tbl)
	require.NoError(t, err)
	assert.Equal(t, "38", cell(t, out, 0, "staff_numbers"))
}

func TestConvertProductWeights(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("product_code", "weight")
	mustAppend(t, tbl, "p1", "100 g")
	mustAppend(t, tbl, "p2", "1.2kg")
	mustAppend(t, tbl, "p3", "77.6ml")
	mustAppend(t, tbl, "p4", "12 x 100g") // unparseable -> missing, row kept
	mustAppend(t, tbl, "p5", nil)

	out, err := c.ConvertProductWeights(tbl)
	require.NoError(t, err)
	require.Equal(t, 5, out.NumRows())

	assert.InDelta(t, 0.1, cell(t, out, 0, "weight"), 1e-9)
	assert.InDelta(t, 1.2, cell(t, out, 1, "weight"), 1e-9)
	assert.InDelta(t, 0.0776, cell(t, out, 2, "weight"), 1e-9)
	assert.Nil(t, cell(t, out, 3, "weight"))
	assert.Nil(t, cell(t, out, 4, "weight"))

	// The input table is a separate value and keeps its raw weights.
	assert.Equal(t, "100 g", cell(t, tbl, 0, "weight"))
}

func TestCleanProducts(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("", "product_code", "date_added", "weight")
	mustAppend(t, tbl, "0", "p1", "2018-10-22", 0.1)
	mustAppend(t, tbl, "1", "p2", "not a date", 0.2)
	mustAppend(t, tbl, "2", "C3NCA2CL35", "2018-10-22", 0.3) // corrupted token
	mustAppend(t, tbl, "3", "NULL", "2018-10-22", 0.4)

	out, err := c.CleanProducts(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, "index", out.Columns()[0])
	assert.Equal(t, "p1", cell(t, out, 0, "product_code"))
}

func TestCleanOrders(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("date_uuid", "first_name", "last_name", "1", "card_number")
	mustAppend(t, tbl, "u1", "Ada", "L", "x", "1234,5678,9012")
	mustAppend(t, tbl, "u2", "Bob", "M", "y", "123")

	out, err := c.CleanOrders(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())

	assert.Equal(t, []string{"date_uuid", "card_number"}, out.Columns())
	assert.Equal(t, "123456789012", cell(t, out, 0, "card_number"))
}

func TestCleanOrdersToleratesAbsentDropColumns(t *testing.T) {
	c := newTestCleaner(t, Options{})

	tbl := table.New("date_uuid", "card_number")
	mustAppend(t, tbl, "u1", "123456789012")

	out, err := c.CleanOrders(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}

func TestCleanDateEvents(t *testing.T) {
	c := newTestCleaner(t, Options{SnapshotYear: 2022})

	tbl := table.New("timestamp", "month", "year", "day", "date_uuid")
	mustAppend(t, tbl, "22:00:10", " 7 ", "1996", "12", "ev1")  // kept; month trimmed
	mustAppend(t, tbl, "09:30:00", "13", "1996", "12", "ev2")   // month out of range
	mustAppend(t, tbl, "09:30:00", "7", "2023", "12", "ev3")    // beyond snapshot year
	mustAppend(t, tbl, "09:30:00", "7", "1899", "12", "ev4")    // before 1900
	mustAppend(t, tbl, "09:30:00", "7", "1996", "32", "ev5")    // day out of range
	mustAppend(t, tbl, "09:30:00", "7", "19x6", "12", "ev6")    // year not numeric
	mustAppend(t, tbl, "no clock", "7", "1996", "12", "ev7")    // timestamp coerced to missing, kept

	out, err := c.CleanDateEvents(tbl)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	assert.Equal(t, "22:00:10", cell(t, out, 0, "timestamp"))
	assert.Equal(t, "ev1", cell(t, out, 0, "date_uuid"))
	assert.Nil(t, cell(t, out, 1, "timestamp"))
	assert.Equal(t, "ev7", cell(t, out, 1, "date_uuid"))
}

func TestCleanDateEventsBounds(t *testing.T) {
	c := newTestCleaner(t, Options{SnapshotYear: 2022})

	tbl := table.New("timestamp", "month", "year", "day", "date_uuid")
	mustAppend(t, tbl, "00:00:00", "1", "1900", "1", "lo")
	mustAppend(t, tbl, "23:59:59", "12", "2022", "31", "hi")

	out, err := c.CleanDateEvents(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumRows())
}
