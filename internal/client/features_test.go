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

func TestFeaturesClient_ListCollections(t *testing.T) {
	t.Parallel()

	// The Features API pages with an OGC-style links array instead of a
	// links object.
	mux := http.NewServeMux()
	mux.HandleFunc("/features/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(`{
				"collections": [{"id": "col-2", "title": "Flood zones"}],
				"links": [{"rel": "self", "href": "/features/v1/collections?page=2"}]
			}`))

			return
		}

		_, _ = w.Write([]byte(`{
			"collections": [{"id": "col-1", "title": "Field boundaries"}],
			"links": [
				{"rel": "self", "href": "/features/v1/collections"},
				{"rel": "next", "href": "/features/v1/collections?page=2"}
			]
		}`))
	})

	executor, _ := newExecutor(t, mux)
	features := client.NewFeaturesClient(executor)

	iterator, err := features.ListCollections(context.Background(), 0)
	require.NoError(t, err)

	all, err := iterator.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "col-1", all[0].ID)
	assert.Equal(t, "Flood zones", all[1].Title)
}

func TestFeaturesClient_GetCollection(t *testing.T) {
	t.Parallel()

	executor, _ := newExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/features/v1/collections/col-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "col-1", "title": "Field boundaries", "feature_count": 42}`))
	}))

	features := client.NewFeaturesClient(executor)

	collection, err := features.GetCollection(context.Background(), "col-1")
	require.NoError(t, err)
	assert.Equal(t, "col-1", collection.ID)
	assert.Equal(t, 42, collection.FeatureCount)
}

func TestFeaturesClient_ListItems(t *testing.T) {
	t.Parallel()

	executor, _ := newExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/features/v1/collections/col-1/items", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"features": [{"id": "feat-1"}, {"id": "feat-2"}],
			"links": []
		}`))
	}))

	features := client.NewFeaturesClient(executor)

	iterator, err := features.ListItems(context.Background(), "col-1", 0)
	require.NoError(t, err)

	all, err := iterator.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "feat-1", all[0].ID)
}

func TestFeaturesClient_AddItems(t *testing.T) {
	t.Parallel()

	executor, _ := newExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/features/v1/collections/col-1/items", r.URL.Path)

		var upload struct {
			Type     string               `json:"type"`
			Features []terrascope.Feature `json:"features"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&upload))
		assert.Equal(t, "FeatureCollection", upload.Type)
		require.Len(t, upload.Features, 2)

		_, _ = w.Write([]byte(`["feat-1", "feat-2"]`))
	}))

	features := client.NewFeaturesClient(executor)

	ids, err := features.AddItems(context.Background(), "col-1", []terrascope.Feature{
		{Geometry: terrascope.Geometry{"type": "Point", "coordinates": []float64{4.9, 52.4}}},
		{Geometry: terrascope.Geometry{"type": "Point", "coordinates": []float64{5.1, 52.1}}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"feat-1", "feat-2"}, ids)
}
