package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

var (
	mosaicsPageConfig = terrascope.PageConfig{
		ItemsKey: "mosaics",
		LinksKey: "_links",
		NextKey:  "_next",
	}

	quadsPageConfig = terrascope.PageConfig{
		ItemsKey: "items",
		LinksKey: "_links",
		NextKey:  "_next",
	}
)

// MosaicsClient implements terrascope.MosaicsClient. Mosaic metadata is
// immutable once published, so single-resource GETs go through the cache
// when one is configured; paged listings never do.
type MosaicsClient struct {
	httpClient *http.Client
}

// NewMosaicsClient creates a new mosaics client.
func NewMosaicsClient(httpClient *http.Client) *MosaicsClient {
	return &MosaicsClient{httpClient: httpClient}
}

// List implements terrascope.MosaicsClient.List.
func (c *MosaicsClient) List(ctx context.Context, limit int) (*terrascope.Iterator[terrascope.Mosaic], error) {
	first := firstPageRef("/basemaps/v1/mosaics", pageSizeValues(limit))

	return terrascope.NewIterator[terrascope.Mosaic](c.httpClient, first, mosaicsPageConfig, limit), nil
}

// Get implements terrascope.MosaicsClient.Get.
func (c *MosaicsClient) Get(ctx context.Context, mosaicID string) (*terrascope.Mosaic, error) {
	path := fmt.Sprintf("/basemaps/v1/mosaics/%s", mosaicID)

	resp, err := c.httpClient.GetCached(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting mosaic: %w", err)
	}

	var mosaic terrascope.Mosaic
	if err := json.Unmarshal(resp.Body, &mosaic); err != nil {
		return nil, fmt.Errorf("parsing mosaic response: %w", err)
	}

	return &mosaic, nil
}

// ListQuads implements terrascope.MosaicsClient.ListQuads. An optional
// bbox (minx, miny, maxx, maxy) restricts the listing spatially.
func (c *MosaicsClient) ListQuads(ctx context.Context, mosaicID string, bbox []float64, limit int) (*terrascope.Iterator[terrascope.Quad], error) {
	path := fmt.Sprintf("/basemaps/v1/mosaics/%s/quads", mosaicID)
	query := pageSizeValues(limit)

	if len(bbox) > 0 {
		if len(bbox) != 4 {
			return nil, fmt.Errorf("%w: bbox needs exactly 4 coordinates, got %d", terrascope.ErrBadQueryValue, len(bbox))
		}

		coords := make([]string, len(bbox))
		for i, coord := range bbox {
			coords[i] = strconv.FormatFloat(coord, 'f', -1, 64)
		}

		query.Set("bbox", strings.Join(coords, ","))
	}

	first := firstPageRef(path, query)

	return terrascope.NewIterator[terrascope.Quad](c.httpClient, first, quadsPageConfig, limit), nil
}

// GetQuad implements terrascope.MosaicsClient.GetQuad.
func (c *MosaicsClient) GetQuad(ctx context.Context, mosaicID, quadID string) (*terrascope.Quad, error) {
	path := fmt.Sprintf("/basemaps/v1/mosaics/%s/quads/%s", mosaicID, quadID)

	resp, err := c.httpClient.GetCached(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting quad: %w", err)
	}

	var quad terrascope.Quad
	if err := json.Unmarshal(resp.Body, &quad); err != nil {
		return nil, fmt.Errorf("parsing quad response: %w", err)
	}

	return &quad, nil
}
