package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

var taskingOrdersPageConfig = terrascope.PageConfig{
	ItemsKey: "orders",
	LinksKey: "_links",
	NextKey:  "next",
}

// TaskingClient implements terrascope.TaskingClient.
type TaskingClient struct {
	httpClient *http.Client
}

// NewTaskingClient creates a new tasking client.
func NewTaskingClient(httpClient *http.Client) *TaskingClient {
	return &TaskingClient{httpClient: httpClient}
}

// CreateOrder implements terrascope.TaskingClient.CreateOrder.
func (c *TaskingClient) CreateOrder(ctx context.Context, request *terrascope.TaskingOrderRequest) (*terrascope.TaskingOrder, error) {
	resp, err := c.httpClient.Post(ctx, "/tasking/v2/orders", request)
	if err != nil {
		return nil, fmt.Errorf("creating tasking order: %w", err)
	}

	var order terrascope.TaskingOrder
	if err := json.Unmarshal(resp.Body, &order); err != nil {
		return nil, fmt.Errorf("parsing tasking order response: %w", err)
	}

	return &order, nil
}

// GetOrder implements terrascope.TaskingClient.GetOrder.
func (c *TaskingClient) GetOrder(ctx context.Context, orderID string) (*terrascope.TaskingOrder, error) {
	path := fmt.Sprintf("/tasking/v2/orders/%s", orderID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tasking order: %w", err)
	}

	var order terrascope.TaskingOrder
	if err := json.Unmarshal(resp.Body, &order); err != nil {
		return nil, fmt.Errorf("parsing tasking order response: %w", err)
	}

	return &order, nil
}

// ListOrders implements terrascope.TaskingClient.ListOrders.
func (c *TaskingClient) ListOrders(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.TaskingOrder], error) {
	first := firstPageRef("/tasking/v2/orders", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.TaskingOrder](c.httpClient, first, taskingOrdersPageConfig, limit), nil
}

// CancelOrder implements terrascope.TaskingClient.CancelOrder.
func (c *TaskingClient) CancelOrder(ctx context.Context, orderID string) error {
	path := fmt.Sprintf("/tasking/v2/orders/%s", orderID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("cancelling tasking order: %w", err)
	}

	return nil
}

// WaitForOrder implements terrascope.TaskingClient.WaitForOrder. Tasking
// orders move through their own state sequence, where "partial" does not
// exist and "success" precedes "failed".
func (c *TaskingClient) WaitForOrder(ctx context.Context, orderID, state string, opts *terrascope.WaitOptions) (string, error) {
	fetch := func(ctx context.Context) (string, error) {
		order, err := c.GetOrder(ctx, orderID)
		if err != nil {
			return "", err
		}

		return order.Status, nil
	}

	return terrascope.NewWaiter(orderID, state, terrascope.TaskingOrderStates, fetch, opts).Wait(ctx)
}
