// pkg/load/postgres.go
package load

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"retail-etl/pkg/connector"
	"retail-etl/pkg/table"
)

// PostgresLoader replaces destination tables wholesale: drop, recreate
// from the cleaned table's columns, batch insert. Column types are all
// TEXT; every cell is loaded by its text rendering and typed casts are
// applied downstream of this pipeline.
type PostgresLoader struct {
	conn      connector.DatabaseConnector
	logger    *zap.Logger
	batchSize int
}

// NewPostgresLoader creates a loader over the target database.
func NewPostgresLoader(conn connector.DatabaseConnector, logger *zap.Logger, batchSize int) (*PostgresLoader, error) {
	if conn == nil {
		return nil, errors.New("target connector cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &PostgresLoader{conn: conn, logger: logger, batchSize: batchSize}, nil
}

// Load replaces the destination table's contents with the given table.
func (l *PostgresLoader) Load(ctx context.Context, t *table.Table, destination string) error {
	if t.NumCols() == 0 {
		return fmt.Errorf("refusing to load table with no columns into %s", destination)
	}

	dest := pq.QuoteIdentifier(destination)

	if _, err := l.conn.ExecWithTimeout(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", dest), 30*time.Second); err != nil {
		return fmt.Errorf("failed to drop %s: %w", destination, err)
	}

	columnDefs := make([]string, 0, t.NumCols())
	for _, col := range t.Columns() {
		columnDefs = append(columnDefs, pq.QuoteIdentifier(col)+" TEXT")
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", dest, strings.Join(columnDefs, ",\n\t"))
	if _, err := l.conn.ExecWithTimeout(ctx, createSQL, 30*time.Second); err != nil {
		return fmt.Errorf("failed to create %s: %w", destination, err)
	}

	inserted, err := l.batchInsert(ctx, t, dest)
	if err != nil {
		return err
	}

	l.logger.Info("Loaded destination table",
		zap.String("destination", destination),
		zap.Int64("rows", inserted))
	return nil
}

// batchInsert writes rows in multi-row INSERT batches.
func (l *PostgresLoader) batchInsert(ctx context.Context, t *table.Table, dest string) (int64, error) {
	cols := t.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	columnStr := strings.Join(quoted, ", ")

	var total int64
	for start := 0; start < t.NumRows(); start += l.batchSize {
		end := start + l.batchSize
		if end > t.NumRows() {
			end = t.NumRows()
		}

		placeholders := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*len(cols))
		for i := start; i < end; i++ {
			row := t.Row(i)
			rowPlaceholders := make([]string, len(cols))
			for j, cell := range row {
				rowPlaceholders[j] = fmt.Sprintf("$%d", len(args)+1)
				args = append(args, cellValue(cell))
			}
			placeholders = append(placeholders, fmt.Sprintf("(%s)", strings.Join(rowPlaceholders, ", ")))
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			dest, columnStr, strings.Join(placeholders, ", "))

		result, err := l.conn.ExecWithTimeout(ctx, query, 30*time.Second, args...)
		if err != nil {
			return total, fmt.Errorf("batch insert into %s failed: %w", dest, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			l.logger.Warn("Couldn't get rows affected", zap.Error(err))
		} else {
			total += rowsAffected
		}
	}

	return total, nil
}

// cellValue maps a cell to its SQL parameter: missing cells load as
// NULL, everything else by its text rendering.
func cellValue(c table.Cell) interface{} {
	if c == nil {
		return nil
	}
	return table.CellString(c)
}
