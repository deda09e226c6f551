// pkg/pipeline/lanes.go
package pipeline

import (
	"retail-etl/pkg/clean"
	"retail-etl/pkg/extract"
	"retail-etl/pkg/table"
)

// Source descriptors and destination tables for the six entity lanes.
const (
	sourceUserTable  = "legacy_users"
	sourceOrderTable = "orders_table"
	sourceCardPDF    = "card_details.pdf"
	sourceProductCSV = "s3://data-handling-public/products.csv"
	sourceEventsJSON = "https://data-handling-public.s3.eu-west-1.amazonaws.com/date_details.json"

	destUsers    = "dim_users"
	destCards    = "dim_card_details"
	destStores   = "dim_store_details"
	destProducts = "dim_products"
	destOrders   = "orders_table"
	destEvents   = "dim_date_times"
)

// DefaultLanes builds the six entity lanes in their canonical order.
// Overrides lets callers repoint individual sources (test fixtures,
// alternate buckets) without rebuilding the lane list by hand.
type Overrides struct {
	UserTable  string
	OrderTable string
	CardPDF    string
	ProductCSV string
	EventsJSON string
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// DefaultLanes wires each entity's source descriptor, expected raw
// columns, cleaner, and destination.
func DefaultLanes(c *clean.Cleaner, o Overrides) []Lane {
	return []Lane{
		NewLane("user",
			extract.Descriptor{Kind: extract.KindDatabaseTable, Name: pick(o.UserTable, sourceUserTable)},
			[]string{"index", "first_name", "last_name", "date_of_birth", "company", "email_address", "address", "country", "country_code", "phone_number", "join_date", "user_uuid"},
			c.CleanUsers,
			destUsers),
		NewLane("card",
			extract.Descriptor{Kind: extract.KindPDF, Name: pick(o.CardPDF, sourceCardPDF)},
			[]string{"card_number", "expiry_date", "card_provider", "date_payment_confirmed"},
			c.CleanCards,
			destCards),
		NewLane("store",
			extract.Descriptor{Kind: extract.KindStoreAPI},
			[]string{"address", "continent", "country_code", "index", "lat", "latitude", "locality", "longitude", "opening_date", "staff_numbers", "store_code", "store_type"},
			c.CleanStores,
			destStores),
		NewLane("product",
			extract.Descriptor{Kind: extract.KindS3Object, Name: pick(o.ProductCSV, sourceProductCSV), Format: extract.FormatCSV},
			[]string{"", "product_name", "product_price", "weight", "category", "EAN", "date_added", "uuid", "removed", "product_code"},
			cleanProductsWithWeights(c),
			destProducts),
		NewLane("order",
			extract.Descriptor{Kind: extract.KindDatabaseTable, Name: pick(o.OrderTable, sourceOrderTable)},
			[]string{"index", "date_uuid", "first_name", "last_name", "user_uuid", "card_number", "store_code", "product_code", "1", "product_quantity"},
			c.CleanOrders,
			destOrders),
		NewLane("date-event",
			extract.Descriptor{Kind: extract.KindS3Object, Name: pick(o.EventsJSON, sourceEventsJSON), Format: extract.FormatJSON},
			[]string{"date_uuid", "day", "month", "time_period", "timestamp", "year"},
			c.CleanDateEvents,
			destEvents),
	}
}

// cleanProductsWithWeights chains the standalone weight conversion pass
// in front of the product cleaner.
func cleanProductsWithWeights(c *clean.Cleaner) CleanFunc {
	return func(t *table.Table) (*table.Table, error) {
		converted, err := c.ConvertProductWeights(t)
		if err != nil {
			return nil, err
		}
		return c.CleanProducts(converted)
	}
}
