// pkg/load/load.go
package load

import (
	"context"

	"retail-etl/pkg/table"
)

// Loader writes a cleaned table into a named destination, replacing any
// existing contents wholesale. Partial-success reporting is not part of
// the contract.
type Loader interface {
	Load(ctx context.Context, t *table.Table, destination string) error
}
