package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

var (
	subscriptionsPageConfig = terrascope.PageConfig{
		ItemsKey: "subscriptions",
		LinksKey: "_links",
		NextKey:  "next",
	}

	subscriptionResultsPageConfig = terrascope.PageConfig{
		ItemsKey: "results",
		LinksKey: "_links",
		NextKey:  "next",
	}
)

// SubscriptionsClient implements terrascope.SubscriptionsClient.
type SubscriptionsClient struct {
	httpClient *http.Client
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(httpClient *http.Client) *SubscriptionsClient {
	return &SubscriptionsClient{httpClient: httpClient}
}

// Create implements terrascope.SubscriptionsClient.Create.
func (c *SubscriptionsClient) Create(ctx context.Context, request *terrascope.SubscriptionRequest) (*terrascope.Subscription, error) {
	resp, err := c.httpClient.Post(ctx, "/subscriptions/v1", request)
	if err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	var subscription terrascope.Subscription
	if err := json.Unmarshal(resp.Body, &subscription); err != nil {
		return nil, fmt.Errorf("parsing subscription response: %w", err)
	}

	return &subscription, nil
}

// Get implements terrascope.SubscriptionsClient.Get.
func (c *SubscriptionsClient) Get(ctx context.Context, subscriptionID string) (*terrascope.Subscription, error) {
	path := fmt.Sprintf("/subscriptions/v1/%s", subscriptionID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	var subscription terrascope.Subscription
	if err := json.Unmarshal(resp.Body, &subscription); err != nil {
		return nil, fmt.Errorf("parsing subscription response: %w", err)
	}

	return &subscription, nil
}

// List implements terrascope.SubscriptionsClient.List.
func (c *SubscriptionsClient) List(ctx context.Context, params *terrascope.ListParams, limit int) (*terrascope.Iterator[terrascope.Subscription], error) {
	query := pageSizeValues(limit)

	if params != nil {
		for key, values := range params.ToValues() {
			for _, value := range values {
				query.Set(key, value)
			}
		}
	}

	first := firstPageRef("/subscriptions/v1", query)

	return terrascope.NewIterator[terrascope.Subscription](c.httpClient, first, subscriptionsPageConfig, limit), nil
}

// Update implements terrascope.SubscriptionsClient.Update.
func (c *SubscriptionsClient) Update(ctx context.Context, subscriptionID string, request *terrascope.SubscriptionRequest) (*terrascope.Subscription, error) {
	path := fmt.Sprintf("/subscriptions/v1/%s", subscriptionID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating subscription: %w", err)
	}

	var subscription terrascope.Subscription
	if err := json.Unmarshal(resp.Body, &subscription); err != nil {
		return nil, fmt.Errorf("parsing subscription response: %w", err)
	}

	return &subscription, nil
}

// Cancel implements terrascope.SubscriptionsClient.Cancel.
func (c *SubscriptionsClient) Cancel(ctx context.Context, subscriptionID string) error {
	path := fmt.Sprintf("/subscriptions/v1/%s/cancel", subscriptionID)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("cancelling subscription: %w", err)
	}

	return nil
}

// ListResults implements terrascope.SubscriptionsClient.ListResults.
func (c *SubscriptionsClient) ListResults(ctx context.Context, subscriptionID string, limit int) (*terrascope.Iterator[terrascope.SubscriptionResult], error) {
	path := fmt.Sprintf("/subscriptions/v1/%s/results", subscriptionID)
	first := firstPageRef(path, pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.SubscriptionResult](c.httpClient, first, subscriptionResultsPageConfig, limit), nil
}
