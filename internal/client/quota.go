package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// quotaPageConfig matches the account API page shape used by products and
// reservations alike.
var quotaPageConfig = terrascope.PageConfig{
	ItemsKey: "results",
	LinksKey: "_links",
	NextKey:  "next",
}

// QuotaClient implements terrascope.QuotaClient.
type QuotaClient struct {
	httpClient *http.Client
}

// NewQuotaClient creates a new quota client.
func NewQuotaClient(httpClient *http.Client) *QuotaClient {
	return &QuotaClient{httpClient: httpClient}
}

// GetProducts implements terrascope.QuotaClient.GetProducts.
func (c *QuotaClient) GetProducts(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.QuotaProduct], error) {
	first := firstPageRef("/account/v1/products", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.QuotaProduct](c.httpClient, first, quotaPageConfig, limit), nil
}

// ListReservations implements terrascope.QuotaClient.ListReservations.
func (c *QuotaClient) ListReservations(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.QuotaReservation], error) {
	first := firstPageRef("/account/v1/quota-reservations", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.QuotaReservation](c.httpClient, first, quotaPageConfig, limit), nil
}

// CreateReservation implements terrascope.QuotaClient.CreateReservation.
func (c *QuotaClient) CreateReservation(ctx context.Context, request *terrascope.QuotaReservationRequest) (*terrascope.QuotaReservation, error) {
	resp, err := c.httpClient.Post(ctx, "/account/v1/quota-reservations", request)
	if err != nil {
		return nil, fmt.Errorf("creating quota reservation: %w", err)
	}

	var reservation terrascope.QuotaReservation
	if err := json.Unmarshal(resp.Body, &reservation); err != nil {
		return nil, fmt.Errorf("parsing reservation response: %w", err)
	}

	return &reservation, nil
}

// EstimateReservation implements terrascope.QuotaClient.EstimateReservation.
// The server prices the reservation without committing quota.
func (c *QuotaClient) EstimateReservation(ctx context.Context, request *terrascope.QuotaReservationRequest) (*terrascope.QuotaEstimate, error) {
	resp, err := c.httpClient.Post(ctx, "/account/v1/quota-reservations/estimate", request)
	if err != nil {
		return nil, fmt.Errorf("estimating quota reservation: %w", err)
	}

	var estimate terrascope.QuotaEstimate
	if err := json.Unmarshal(resp.Body, &estimate); err != nil {
		return nil, fmt.Errorf("parsing estimate response: %w", err)
	}

	return &estimate, nil
}
