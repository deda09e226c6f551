package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retail-etl/pkg/config"
)

func newStoreServer(t *testing.T, stores []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/number_stores", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprintf(w, `{"number_stores": %d}`, len(stores))
	})
	mux.HandleFunc("/store_details/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var index int
		if _, err := fmt.Sscanf(r.URL.Path, "/store_details/%d", &index); err != nil || index < 0 || index >= len(stores) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, stores[index])
	})
	return httptest.NewServer(mux)
}

func storeClient(t *testing.T, baseURL string) *StoreAPIClient {
	t.Helper()
	c, err := NewStoreAPIClient(&config.StoreAPIConfig{
		Endpoint:       baseURL + "/store_details",
		CountEndpoint:  baseURL + "/number_stores",
		Headers:        map[string]string{"x-api-key": "test-key"},
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestFetchStores(t *testing.T) {
	srv := newStoreServer(t, []string{
		`{"index": 0, "store_code": "WEB-1", "lat": null, "latitude": "53.96"}`,
		`{"index": 1, "store_code": "HI-9", "latitude": "40.71"}`,
	})
	defer srv.Close()

	tbl, err := storeClient(t, srv.URL).FetchStores(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"index", "lat", "latitude", "store_code"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())

	v, err := tbl.Get(1, "lat")
	require.NoError(t, err)
	assert.Nil(t, v, "fields absent from a later page become missing")

	v, err = tbl.Get(1, "store_code")
	require.NoError(t, err)
	assert.Equal(t, "HI-9", v)
}

func TestFetchStoresZeroStores(t *testing.T) {
	srv := newStoreServer(t, nil)
	defer srv.Close()

	tbl, err := storeClient(t, srv.URL).FetchStores(context.Background())
	require.NoError(t, err)
	assert.True(t, tbl.IsEmpty())
}

func TestFetchStoresWrongKey(t *testing.T) {
	srv := newStoreServer(t, []string{`{}`})
	defer srv.Close()

	c, err := NewStoreAPIClient(&config.StoreAPIConfig{
		Endpoint:       srv.URL + "/store_details",
		CountEndpoint:  srv.URL + "/number_stores",
		Headers:        map[string]string{"x-api-key": "wrong"},
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.FetchStores(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchStoresUnreachableServer(t *testing.T) {
	srv := newStoreServer(t, []string{`{}`})
	srv.Close()

	_, err := storeClient(t, srv.URL).FetchStores(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchStoresEndpointsRequired(t *testing.T) {
	c, err := NewStoreAPIClient(&config.StoreAPIConfig{RequestTimeout: time.Second}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.FetchStores(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
