// pkg/extract/extract.go
package extract

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"retail-etl/pkg/connector"
	"retail-etl/pkg/table"
)

// ErrSourceUnavailable wraps any connectivity-class failure (network,
// auth, timeout, missing object). The pipeline treats it as "zero rows"
// rather than aborting the lane.
var ErrSourceUnavailable = errors.New("source unavailable")

// Kind identifies the kind of source a descriptor points at.
type Kind int

const (
	KindDatabaseTable Kind = iota + 1
	KindPDF
	KindStoreAPI
	KindS3Object
)

// Format selects the decoder for object-storage blobs.
type Format int

const (
	FormatCSV Format = iota + 1
	FormatJSON
)

// Descriptor identifies one source dataset: a database table name, a
// document path, the paginated store API, or an object-storage address.
type Descriptor struct {
	Kind   Kind
	Name   string // table name, file path, or object address; unused for KindStoreAPI
	Format Format // object decoding, KindS3Object only
}

// Source is the seam the pipeline fetches raw tables through.
type Source interface {
	Fetch(ctx context.Context, desc Descriptor) (*table.Table, error)
}

// Extractor fetches raw tables from every supported source kind. Any
// collaborator left nil makes its source kind unavailable, which the
// pipeline degrades to an empty table.
type Extractor struct {
	db     connector.DatabaseConnector
	api    *StoreAPIClient
	s3     *S3Reader
	logger *zap.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(db connector.DatabaseConnector, api *StoreAPIClient, s3 *S3Reader, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Extractor{db: db, api: api, s3: s3, logger: logger}, nil
}

// Fetch retrieves the raw table the descriptor points at.
func (e *Extractor) Fetch(ctx context.Context, desc Descriptor) (*table.Table, error) {
	switch desc.Kind {
	case KindDatabaseTable:
		if e.db == nil {
			return nil, fmt.Errorf("%w: no source database configured", ErrSourceUnavailable)
		}
		return e.readTable(ctx, desc.Name)
	case KindPDF:
		return e.readPDF(desc.Name)
	case KindStoreAPI:
		if e.api == nil {
			return nil, fmt.Errorf("%w: no store API configured", ErrSourceUnavailable)
		}
		return e.api.FetchStores(ctx)
	case KindS3Object:
		if e.s3 == nil {
			return nil, fmt.Errorf("%w: no object storage configured", ErrSourceUnavailable)
		}
		return e.s3.FetchObject(ctx, desc.Name, desc.Format)
	default:
		return nil, fmt.Errorf("unknown source kind %d", desc.Kind)
	}
}
