// pkg/clean/card.go
package clean

import (
	"fmt"

	"retail-etl/pkg/table"
)

const (
	colCardNumber           = "card_number"
	colDatePaymentConfirmed = "date_payment_confirmed"
)

// CleanCards normalizes the card-details table. Rows whose payment
// confirmation date is not a strict calendar date, or whose card number
// is not a 12-19 digit string, are rejected outright.
func (c *Cleaner) CleanCards(t *table.Table) (*table.Table, error) {
	if err := t.RequireColumns(colCardNumber, colDatePaymentConfirmed); err != nil {
		return nil, fmt.Errorf("card table: %w", err)
	}

	out := DropNullRows(t)

	out, err := keepRows(out, colDatePaymentConfirmed, func(s string) bool {
		_, ok := ParseISODate(s)
		return ok
	})
	if err != nil {
		return nil, err
	}

	out, err = keepRows(out, colCardNumber, ValidCardNumber)
	if err != nil {
		return nil, err
	}

	c.logReduction("card", t, out)
	return out, nil
}
