package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

var reportsPageConfig = terrascope.PageConfig{
	ItemsKey: "reports",
	LinksKey: "_links",
	NextKey:  "next",
}

// ReportsClient implements terrascope.ReportsClient.
type ReportsClient struct {
	httpClient *http.Client
}

// NewReportsClient creates a new reports client.
func NewReportsClient(httpClient *http.Client) *ReportsClient {
	return &ReportsClient{httpClient: httpClient}
}

// List implements terrascope.ReportsClient.List.
func (c *ReportsClient) List(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.Report], error) {
	first := firstPageRef("/account/v1/reports", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.Report](c.httpClient, first, reportsPageConfig, limit), nil
}

// Get implements terrascope.ReportsClient.Get.
func (c *ReportsClient) Get(ctx context.Context, reportID string) (*terrascope.Report, error) {
	path := fmt.Sprintf("/account/v1/reports/%s", reportID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}

	var report terrascope.Report
	if err := json.Unmarshal(resp.Body, &report); err != nil {
		return nil, fmt.Errorf("parsing report response: %w", err)
	}

	return &report, nil
}
