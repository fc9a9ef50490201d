package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// ordersPageConfig matches the Orders API page shape: items under
// "orders", the next link under "_links"."next".
var ordersPageConfig = terrascope.PageConfig{
	ItemsKey: "orders",
	LinksKey: "_links",
	NextKey:  "next",
}

// OrdersClient implements terrascope.OrdersClient.
type OrdersClient struct {
	httpClient *http.Client
}

// NewOrdersClient creates a new orders client.
func NewOrdersClient(httpClient *http.Client) *OrdersClient {
	return &OrdersClient{httpClient: httpClient}
}

// Create implements terrascope.OrdersClient.Create.
func (c *OrdersClient) Create(ctx context.Context, request *terrascope.OrderRequest) (*terrascope.Order, error) {
	resp, err := c.httpClient.Post(ctx, "/orders/v2", request)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	var order terrascope.Order
	if err := json.Unmarshal(resp.Body, &order); err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return &order, nil
}

// Get implements terrascope.OrdersClient.Get.
func (c *OrdersClient) Get(ctx context.Context, orderID string) (*terrascope.Order, error) {
	path := fmt.Sprintf("/orders/v2/%s", orderID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}

	var order terrascope.Order
	if err := json.Unmarshal(resp.Body, &order); err != nil {
		return nil, fmt.Errorf("parsing order response: %w", err)
	}

	return &order, nil
}

// List implements terrascope.OrdersClient.List.
func (c *OrdersClient) List(ctx context.Context, params *terrascope.ListParams, limit int) (*terrascope.Iterator[terrascope.Order], error) {
	query := pageSizeValues(limit)

	if params != nil {
		for key, values := range params.ToValues() {
			for _, value := range values {
				query.Set(key, value)
			}
		}
	}

	first := firstPageRef("/orders/v2", query)

	return terrascope.NewIterator[terrascope.Order](c.httpClient, first, ordersPageConfig, limit), nil
}

// Cancel implements terrascope.OrdersClient.Cancel.
func (c *OrdersClient) Cancel(ctx context.Context, orderID string) error {
	path := fmt.Sprintf("/orders/v2/%s/cancel", orderID)

	_, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("cancelling order: %w", err)
	}

	return nil
}

// Aggregate implements terrascope.OrdersClient.Aggregate.
func (c *OrdersClient) Aggregate(ctx context.Context) (*terrascope.OrdersAggregate, error) {
	resp, err := c.httpClient.Get(ctx, "/orders/v2/aggregates/counts", url.Values{"interval": []string{"year"}})
	if err != nil {
		return nil, fmt.Errorf("aggregating orders: %w", err)
	}

	var aggregate terrascope.OrdersAggregate
	if err := json.Unmarshal(resp.Body, &aggregate); err != nil {
		return nil, fmt.Errorf("parsing aggregate response: %w", err)
	}

	return &aggregate, nil
}

// Wait implements terrascope.OrdersClient.Wait. It polls the order until
// its state reaches or passes the target, or until a terminal state is
// observed.
func (c *OrdersClient) Wait(ctx context.Context, orderID, state string, opts *terrascope.WaitOptions) (string, error) {
	fetch := func(ctx context.Context) (string, error) {
		order, err := c.Get(ctx, orderID)
		if err != nil {
			return "", err
		}

		return order.State, nil
	}

	return terrascope.NewWaiter(orderID, state, terrascope.OrderStates, fetch, opts).Wait(ctx)
}
