// pkg/extract/database.go
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"retail-etl/pkg/table"
)

// readTable pulls every row of a source table, untyped. NULLs come
// through as missing cells; byte slices are rendered as strings so the
// cleaning layer sees the same text a human would.
func (e *Extractor) readTable(ctx context.Context, name string) (*table.Table, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(name))
	rows, err := e.db.DB().QueryxContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read table %s: %v", ErrSourceUnavailable, name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	t := table.New(cols...)
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", name, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating %s: %v", ErrSourceUnavailable, name, err)
	}

	e.logger.Info("Read source table",
		zap.String("table", name),
		zap.Int("rows", t.NumRows()))
	return t, nil
}

// ListTables returns the table names in the source database's public
// schema.
func (e *Extractor) ListTables(ctx context.Context) ([]string, error) {
	if e.db == nil {
		return nil, fmt.Errorf("%w: no source database configured", ErrSourceUnavailable)
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	queryCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	rows, err := e.db.DB().QueryxContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	return tables, nil
}
