package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// searchPageConfig matches the Data API page shape: items under
// "features", the next link under "_links"."_next".
var searchPageConfig = terrascope.PageConfig{
	ItemsKey: "features",
	LinksKey: "_links",
	NextKey:  "_next",
}

// DataClient implements terrascope.DataClient.
type DataClient struct {
	httpClient *http.Client
}

// NewDataClient creates a new data client.
func NewDataClient(httpClient *http.Client) *DataClient {
	return &DataClient{httpClient: httpClient}
}

// QuickSearch implements terrascope.DataClient.QuickSearch. The search is
// executed without being saved; results page lazily.
func (c *DataClient) QuickSearch(ctx context.Context, request *terrascope.SearchRequest, limit int) (*terrascope.Iterator[terrascope.Item], error) {
	resp, err := c.httpClient.Post(ctx, "/data/v1/quick-search", request)
	if err != nil {
		return nil, fmt.Errorf("running quick search: %w", err)
	}

	return terrascope.NewIteratorFromPage[terrascope.Item](c.httpClient, resp.Body, searchPageConfig, limit)
}

// CreateSearch implements terrascope.DataClient.CreateSearch.
func (c *DataClient) CreateSearch(ctx context.Context, request *terrascope.SearchRequest) (*terrascope.Search, error) {
	resp, err := c.httpClient.Post(ctx, "/data/v1/searches", request)
	if err != nil {
		return nil, fmt.Errorf("creating search: %w", err)
	}

	var search terrascope.Search
	if err := json.Unmarshal(resp.Body, &search); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &search, nil
}

// RunSearch implements terrascope.DataClient.RunSearch.
func (c *DataClient) RunSearch(ctx context.Context, searchID string, limit int) (*terrascope.Iterator[terrascope.Item], error) {
	path := fmt.Sprintf("/data/v1/searches/%s/results", searchID)
	first := firstPageRef(path, pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.Item](c.httpClient, first, searchPageConfig, limit), nil
}

// GetItem implements terrascope.DataClient.GetItem.
func (c *DataClient) GetItem(ctx context.Context, itemType, itemID string) (*terrascope.Item, error) {
	path := fmt.Sprintf("/data/v1/item-types/%s/items/%s", itemType, itemID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	var item terrascope.Item
	if err := json.Unmarshal(resp.Body, &item); err != nil {
		return nil, fmt.Errorf("parsing item response: %w", err)
	}

	return &item, nil
}

// ListItemAssets implements terrascope.DataClient.ListItemAssets.
func (c *DataClient) ListItemAssets(ctx context.Context, itemType, itemID string) (map[string]terrascope.Asset, error) {
	path := fmt.Sprintf("/data/v1/item-types/%s/items/%s/assets", itemType, itemID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing item assets: %w", err)
	}

	var assets map[string]terrascope.Asset
	if err := json.Unmarshal(resp.Body, &assets); err != nil {
		return nil, fmt.Errorf("parsing assets response: %w", err)
	}

	return assets, nil
}
