package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// ogcNext extracts the next link from an OGC-style "links" array of
// {rel, href} objects.
func ogcNext(page map[string]json.RawMessage) (string, error) {
	raw, ok := page["links"]
	if !ok {
		return "", nil
	}

	var links []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	}

	err := json.Unmarshal(raw, &links)
	if err != nil {
		return "", fmt.Errorf("parsing links array: %w", err)
	}

	for _, link := range links {
		if link.Rel == "next" {
			return link.Href, nil
		}
	}

	return "", nil
}

var (
	collectionsPageConfig = terrascope.PageConfig{
		ItemsKey: "collections",
		NextFunc: ogcNext,
	}

	collectionItemsPageConfig = terrascope.PageConfig{
		ItemsKey: "features",
		NextFunc: ogcNext,
	}
)

// FeaturesClient implements terrascope.FeaturesClient.
type FeaturesClient struct {
	httpClient *http.Client
}

// NewFeaturesClient creates a new features client.
func NewFeaturesClient(httpClient *http.Client) *FeaturesClient {
	return &FeaturesClient{httpClient: httpClient}
}

// ListCollections implements terrascope.FeaturesClient.ListCollections.
func (c *FeaturesClient) ListCollections(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.FeatureCollection], error) {
	first := firstPageRef("/features/v1/collections", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.FeatureCollection](c.httpClient, first, collectionsPageConfig, limit), nil
}

// GetCollection implements terrascope.FeaturesClient.GetCollection.
func (c *FeaturesClient) GetCollection(ctx context.Context, collectionID string) (*terrascope.FeatureCollection, error) {
	path := fmt.Sprintf("/features/v1/collections/%s", collectionID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}

	var collection terrascope.FeatureCollection
	if err := json.Unmarshal(resp.Body, &collection); err != nil {
		return nil, fmt.Errorf("parsing collection response: %w", err)
	}

	return &collection, nil
}

// ListItems implements terrascope.FeaturesClient.ListItems.
func (c *FeaturesClient) ListItems(ctx context.Context, collectionID string, limit int) (*terrascope.Iterator[terrascope.Feature], error) {
	path := fmt.Sprintf("/features/v1/collections/%s/items", collectionID)
	first := firstPageRef(path, pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.Feature](c.httpClient, first, collectionItemsPageConfig, limit), nil
}

// AddItems implements terrascope.FeaturesClient.AddItems. The features are
// uploaded as a GeoJSON FeatureCollection; the server responds with the
// ids it assigned.
func (c *FeaturesClient) AddItems(ctx context.Context, collectionID string, features []terrascope.Feature) ([]string, error) {
	path := fmt.Sprintf("/features/v1/collections/%s/items", collectionID)

	body := map[string]interface{}{
		"type":     "FeatureCollection",
		"features": features,
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("adding collection items: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(resp.Body, &ids); err != nil {
		return nil, fmt.Errorf("parsing item ids response: %w", err)
	}

	return ids, nil
}
