// pkg/extract/s3.go
package extract

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appconfig "retail-etl/pkg/config"
	"retail-etl/pkg/table"
)

// s3API is the slice of the S3 client the reader needs.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader fetches CSV/JSON blobs from object storage. Addresses may
// be s3:// URIs or plain https URLs for publicly readable objects.
type S3Reader struct {
	client s3API
	http   *http.Client
	logger *zap.Logger
}

// NewS3Reader creates an S3 reader using the standard AWS credential
// chain.
func NewS3Reader(ctx context.Context, cfg *appconfig.S3Config, logger *zap.Logger) (*S3Reader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3Reader{
		client: s3.NewFromConfig(awsCfg),
		http:   &http.Client{},
		logger: logger,
	}, nil
}

// FetchObject retrieves and decodes one object into a raw table.
func (r *S3Reader) FetchObject(ctx context.Context, address string, format Format) (*table.Table, error) {
	body, err := r.open(ctx, address)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var t *table.Table
	switch format {
	case FormatCSV:
		t, err = decodeCSV(body)
	case FormatJSON:
		t, err = decodeJSON(body)
	default:
		return nil, fmt.Errorf("unknown object format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", address, err)
	}

	r.logger.Info("Read object",
		zap.String("address", address),
		zap.Int("rows", t.NumRows()))
	return t, nil
}

// open returns the object's content stream.
func (r *S3Reader) open(ctx context.Context, address string) (io.ReadCloser, error) {
	if strings.HasPrefix(address, "s3://") {
		bucket, key, err := splitS3Address(address)
		if err != nil {
			return nil, err
		}

		out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get object %s: %v", ErrSourceUnavailable, address, err)
		}
		return out.Body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", address, err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request to %s failed: %v", ErrSourceUnavailable, address, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned status %d", ErrSourceUnavailable, address, resp.StatusCode)
	}
	return resp.Body, nil
}

// splitS3Address splits "s3://bucket/key" into its parts.
func splitS3Address(address string) (string, string, error) {
	rest := strings.TrimPrefix(address, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 address: %s", address)
	}
	return bucket, key, nil
}

// decodeCSV reads a CSV document whose first record is the header row.
// Empty cells become missing cells.
func decodeCSV(r io.Reader) (*table.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return table.New(), nil
	}

	t := table.New(records[0]...)
	for _, record := range records[1:] {
		cells := make([]table.Cell, len(record))
		for i, v := range record {
			if v == "" {
				cells[i] = nil
			} else {
				cells[i] = v
			}
		}
		if err := t.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// decodeJSON reads either a column-oriented document (column name ->
// row id -> value, the shape the date-events export uses) or a plain
// array of record objects.
func decodeJSON(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var byColumn map[string]map[string]interface{}
	if err := json.Unmarshal(data, &byColumn); err == nil {
		return tableFromColumns(byColumn), nil
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err == nil {
		return tableFromRecords(records), nil
	}

	return nil, errors.New("unrecognized JSON document shape")
}

// tableFromColumns assembles a column-oriented document. Row ids sort
// numerically when they parse as integers, lexically otherwise.
func tableFromColumns(byColumn map[string]map[string]interface{}) *table.Table {
	cols := make([]string, 0, len(byColumn))
	for c := range byColumn {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	rowIDs := make(map[string]bool)
	for _, rows := range byColumn {
		for id := range rows {
			rowIDs[id] = true
		}
	}
	ids := make([]string, 0, len(rowIDs))
	for id := range rowIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})

	t := table.New(cols...)
	for _, id := range ids {
		cells := make([]table.Cell, len(cols))
		for i, col := range cols {
			cells[i] = byColumn[col][id]
		}
		_ = t.AppendRow(cells...)
	}
	return t
}

// tableFromRecords assembles an array-of-objects document. The first
// record's keys, sorted, define the column order.
func tableFromRecords(records []map[string]interface{}) *table.Table {
	if len(records) == 0 {
		return table.New()
	}

	cols := make([]string, 0, len(records[0]))
	for k := range records[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	t := table.New(cols...)
	for _, record := range records {
		cells := make([]table.Cell, len(cols))
		for i, col := range cols {
			if v, ok := record[col]; ok {
				cells[i] = v
			}
		}
		_ = t.AppendRow(cells...)
	}
	return t
}
