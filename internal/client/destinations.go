package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

var destinationsPageConfig = terrascope.PageConfig{
	ItemsKey: "destinations",
	LinksKey: "_links",
	NextKey:  "next",
}

// DestinationsClient implements terrascope.DestinationsClient.
type DestinationsClient struct {
	httpClient *http.Client
}

// NewDestinationsClient creates a new destinations client.
func NewDestinationsClient(httpClient *http.Client) *DestinationsClient {
	return &DestinationsClient{httpClient: httpClient}
}

// List implements terrascope.DestinationsClient.List.
func (c *DestinationsClient) List(ctx context.Context, params *terrascope.ListParams, limit int) (*terrascope.Iterator[terrascope.Destination], error) {
	query := pageSizeValues(limit)

	if params != nil {
		for key, values := range params.ToValues() {
			for _, value := range values {
				query.Set(key, value)
			}
		}
	}

	first := firstPageRef("/destinations/v1", query)

	return terrascope.NewIterator[terrascope.Destination](c.httpClient, first, destinationsPageConfig, limit), nil
}

// Get implements terrascope.DestinationsClient.Get.
func (c *DestinationsClient) Get(ctx context.Context, destinationID string) (*terrascope.Destination, error) {
	path := fmt.Sprintf("/destinations/v1/%s", destinationID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting destination: %w", err)
	}

	var destination terrascope.Destination
	if err := json.Unmarshal(resp.Body, &destination); err != nil {
		return nil, fmt.Errorf("parsing destination response: %w", err)
	}

	return &destination, nil
}

// Create implements terrascope.DestinationsClient.Create.
func (c *DestinationsClient) Create(ctx context.Context, request *terrascope.DestinationRequest) (*terrascope.Destination, error) {
	resp, err := c.httpClient.Post(ctx, "/destinations/v1", request)
	if err != nil {
		return nil, fmt.Errorf("creating destination: %w", err)
	}

	var destination terrascope.Destination
	if err := json.Unmarshal(resp.Body, &destination); err != nil {
		return nil, fmt.Errorf("parsing destination response: %w", err)
	}

	return &destination, nil
}

// Update implements terrascope.DestinationsClient.Update. Only the fields
// set in the request are changed; archiving happens through the Archived
// flag.
func (c *DestinationsClient) Update(ctx context.Context, destinationID string, request *terrascope.DestinationRequest) (*terrascope.Destination, error) {
	path := fmt.Sprintf("/destinations/v1/%s", destinationID)

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating destination: %w", err)
	}

	var destination terrascope.Destination
	if err := json.Unmarshal(resp.Body, &destination); err != nil {
		return nil, fmt.Errorf("parsing destination response: %w", err)
	}

	return &destination, nil
}
