package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

var (
	// The analytics API wraps collections in "data" and uses a plain
	// "links" object rather than "_links".
	analyticsPageConfig = terrascope.PageConfig{
		ItemsKey: "data",
		LinksKey: "links",
		NextKey:  "next",
	}

	analyticsResultsPageConfig = terrascope.PageConfig{
		ItemsKey: "features",
		LinksKey: "links",
		NextKey:  "next",
	}
)

// AnalyticsClient implements terrascope.AnalyticsClient.
type AnalyticsClient struct {
	httpClient *http.Client
}

// NewAnalyticsClient creates a new analytics client.
func NewAnalyticsClient(httpClient *http.Client) *AnalyticsClient {
	return &AnalyticsClient{httpClient: httpClient}
}

// ListFeeds implements terrascope.AnalyticsClient.ListFeeds.
func (c *AnalyticsClient) ListFeeds(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.Feed], error) {
	first := firstPageRef("/analytics/v1/feeds", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.Feed](c.httpClient, first, analyticsPageConfig, limit), nil
}

// GetFeed implements terrascope.AnalyticsClient.GetFeed.
func (c *AnalyticsClient) GetFeed(ctx context.Context, feedID string) (*terrascope.Feed, error) {
	path := fmt.Sprintf("/analytics/v1/feeds/%s", feedID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting feed: %w", err)
	}

	var feed terrascope.Feed
	if err := json.Unmarshal(resp.Body, &feed); err != nil {
		return nil, fmt.Errorf("parsing feed response: %w", err)
	}

	return &feed, nil
}

// ListSubscriptions implements terrascope.AnalyticsClient.ListSubscriptions.
// An empty feedID lists subscriptions across all feeds.
func (c *AnalyticsClient) ListSubscriptions(ctx context.Context, feedID string, limit int) (*terrascope.Iterator[terrascope.AnalyticsSubscription], error) {
	query := pageSizeValues(limit)
	if feedID != "" {
		query.Set("feedID", feedID)
	}

	first := firstPageRef("/analytics/v1/subscriptions", query)

	return terrascope.NewIterator[terrascope.AnalyticsSubscription](c.httpClient, first, analyticsPageConfig, limit), nil
}

// ListResults implements terrascope.AnalyticsClient.ListResults. Results
// are GeoJSON features produced by the subscription.
func (c *AnalyticsClient) ListResults(ctx context.Context, subscriptionID string, limit int) (*terrascope.Iterator[terrascope.Feature], error) {
	path := fmt.Sprintf("/analytics/v1/subscriptions/%s/results", subscriptionID)
	first := firstPageRef(path, pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.Feature](c.httpClient, first, analyticsResultsPageConfig, limit), nil
}
