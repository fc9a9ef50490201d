package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/internal/client"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

func TestDataClient_QuickSearch(t *testing.T) {
	t.Parallel()

	var continuationFetches int

	mux := http.NewServeMux()
	mux.HandleFunc("/data/v1/quick-search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var request terrascope.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, []string{"scene"}, request.ItemTypes)

		_, _ = w.Write([]byte(`{
			"features": [{"id": "item-1"}, {"id": "item-2"}],
			"_links": {"_next": "/data/v1/quick-search/page2"}
		}`))
	})
	mux.HandleFunc("/data/v1/quick-search/page2", func(w http.ResponseWriter, r *http.Request) {
		continuationFetches++

		_, _ = w.Write([]byte(`{"features": [{"id": "item-3"}], "_links": {}}`))
	})

	executor, _ := newExecutor(t, mux)
	data := client.NewDataClient(executor)

	iterator, err := data.QuickSearch(context.Background(), &terrascope.SearchRequest{ItemTypes: []string{"scene"}}, 0)
	require.NoError(t, err)

	// The POST response is the first page; no continuation fetched yet.
	assert.Zero(t, continuationFetches)

	all, err := iterator.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "item-1", all[0].ID)
	assert.Equal(t, "item-3", all[2].ID)
	assert.Equal(t, 1, continuationFetches)
}

func TestDataClient_QuickSearchLimit(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/data/v1/quick-search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"features": [{"id": "item-1"}, {"id": "item-2"}],
			"_links": {"_next": "/data/v1/quick-search/page2"}
		}`))
	})
	mux.HandleFunc("/data/v1/quick-search/page2", func(w http.ResponseWriter, r *http.Request) {
		t.Error("continuation page fetched despite satisfied limit")
	})

	executor, _ := newExecutor(t, mux)
	data := client.NewDataClient(executor)

	iterator, err := data.QuickSearch(context.Background(), &terrascope.SearchRequest{}, 2)
	require.NoError(t, err)

	all, err := iterator.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDataClient_CreateAndRunSearch(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/data/v1/searches", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "search-1", "name": "daily-monitoring"}`))
	})
	mux.HandleFunc("/data/v1/searches/search-1/results", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"features": [{"id": "item-1"}], "_links": {}}`))
	})

	executor, _ := newExecutor(t, mux)
	data := client.NewDataClient(executor)

	search, err := data.CreateSearch(context.Background(), &terrascope.SearchRequest{Name: "daily-monitoring"})
	require.NoError(t, err)
	assert.Equal(t, "search-1", search.ID)

	iterator, err := data.RunSearch(context.Background(), search.ID, 0)
	require.NoError(t, err)

	all, err := iterator.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "item-1", all[0].ID)
}

func TestDataClient_GetItem(t *testing.T) {
	t.Parallel()

	executor, _ := newExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/v1/item-types/scene/items/item-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "item-1", "item_type": "scene", "properties": {"cloud_cover": 0.1}}`))
	}))

	data := client.NewDataClient(executor)

	item, err := data.GetItem(context.Background(), "scene", "item-1")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "scene", item.ItemType)
	assert.InDelta(t, 0.1, item.Properties["cloud_cover"], 0.001)
}

func TestDataClient_ListItemAssets(t *testing.T) {
	t.Parallel()

	executor, _ := newExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/v1/item-types/scene/items/item-1/assets", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"visual": {"type": "image/tiff", "status": "active"},
			"analytic": {"type": "image/tiff", "status": "inactive"}
		}`))
	}))

	data := client.NewDataClient(executor)

	assets, err := data.ListItemAssets(context.Background(), "scene", "item-1")
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "active", assets["visual"].Status)
	assert.Equal(t, "inactive", assets["analytic"].Status)
}
