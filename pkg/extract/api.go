// pkg/extract/api.go
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"retail-etl/pkg/config"
	"retail-etl/pkg/table"
)

// StoreAPIClient pages through the store-details API: one request for
// the store count, then one request per store index.
type StoreAPIClient struct {
	cfg    *config.StoreAPIConfig
	http   *http.Client
	logger *zap.Logger
}

// NewStoreAPIClient creates a store API client.
func NewStoreAPIClient(cfg *config.StoreAPIConfig, logger *zap.Logger) (*StoreAPIClient, error) {
	if cfg == nil {
		return nil, errors.New("store API config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &StoreAPIClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
	}, nil
}

// FetchStores retrieves every store page and assembles them into one
// table. The first store's keys, sorted, define the column order;
// fields absent from a later page become missing cells.
func (c *StoreAPIClient) FetchStores(ctx context.Context) (*table.Table, error) {
	if c.cfg.Endpoint == "" || c.cfg.CountEndpoint == "" {
		return nil, fmt.Errorf("%w: store API endpoints not configured", ErrSourceUnavailable)
	}

	count, err := c.fetchStoreCount(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Fetching stores", zap.Int("count", count))

	var t *table.Table
	for i := 0; i < count; i++ {
		store, err := c.fetchStore(ctx, i)
		if err != nil {
			return nil, err
		}

		if t == nil {
			cols := make([]string, 0, len(store))
			for k := range store {
				cols = append(cols, k)
			}
			sort.Strings(cols)
			t = table.New(cols...)
		}

		cells := make([]table.Cell, 0, t.NumCols())
		for _, col := range t.Columns() {
			if v, ok := store[col]; ok {
				cells = append(cells, v)
			} else {
				cells = append(cells, nil)
			}
		}
		if err := t.AppendRow(cells...); err != nil {
			return nil, err
		}
	}

	if t == nil {
		t = table.New()
	}
	return t, nil
}

func (c *StoreAPIClient) fetchStoreCount(ctx context.Context) (int, error) {
	var payload struct {
		NumberStores int `json:"number_stores"`
	}
	if err := c.getJSON(ctx, c.cfg.CountEndpoint, &payload); err != nil {
		return 0, err
	}
	return payload.NumberStores, nil
}

func (c *StoreAPIClient) fetchStore(ctx context.Context, index int) (map[string]interface{}, error) {
	var store map[string]interface{}
	url := fmt.Sprintf("%s/%d", c.cfg.Endpoint, index)
	if err := c.getJSON(ctx, url, &store); err != nil {
		return nil, err
	}
	return store, nil
}

func (c *StoreAPIClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	for name, value := range c.cfg.Headers {
		req.Header.Set(name, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request to %s failed: %v", ErrSourceUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrSourceUnavailable, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
