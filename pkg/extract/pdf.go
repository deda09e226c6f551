// pkg/extract/pdf.go
package extract

import (
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"retail-etl/pkg/table"
)

// readPDF extracts the tabular card-details document. The first text
// row of the first page is the header; later rows whose word count
// matches the header become data rows, anything else is dropped with a
// debug log. Good enough for the fixed layout this document uses.
func (e *Extractor) readPDF(path string) (*table.Table, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	var t *table.Table
	skipped := 0

	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to read PDF page %d: %w", pageIndex, err)
		}

		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if len(words) == 0 {
				continue
			}

			if t == nil {
				t = table.New(words...)
				continue
			}
			if len(words) != t.NumCols() {
				skipped++
				continue
			}

			cells := make([]table.Cell, len(words))
			for i, w := range words {
				cells[i] = w
			}
			if err := t.AppendRow(cells...); err != nil {
				return nil, err
			}
		}
	}

	if t == nil {
		t = table.New()
	}
	if skipped > 0 {
		e.logger.Debug("Skipped non-tabular PDF rows",
			zap.String("path", path),
			zap.Int("skipped", skipped))
	}

	e.logger.Info("Read PDF document",
		zap.String("path", path),
		zap.Int("rows", t.NumRows()))
	return t, nil
}
