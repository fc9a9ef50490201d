//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// TestCatalogWorkflow searches the live catalog and resolves assets for
// the first result.
func TestCatalogWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	iterator, err := client.Data().QuickSearch(ctx, &terrascope.SearchRequest{
		ItemTypes: []string{"scene"},
	}, 5)
	require.NoError(t, err, "quick search failed")

	items, err := iterator.All(ctx)
	require.NoError(t, err, "reading search results failed")

	if len(items) == 0 {
		t.Skip("no catalog items visible to this account")
	}

	item := items[0]
	assert.NotEmpty(t, item.ID)
	assert.NotEmpty(t, item.ItemType)

	assets, err := client.Data().ListItemAssets(ctx, item.ItemType, item.ID)
	require.NoError(t, err, "listing assets failed")
	assert.NotEmpty(t, assets)
}

// TestAccountWorkflow walks the account surfaces that every API key can
// read: quota products and order listings.
func TestAccountWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	products, err := client.Quota().GetProducts(ctx, 10)
	require.NoError(t, err, "listing quota products failed")

	_, err = products.All(ctx)
	require.NoError(t, err, "reading quota products failed")

	orders, err := client.Orders().List(ctx, nil, 10)
	require.NoError(t, err, "listing orders failed")

	_, err = orders.All(ctx)
	require.NoError(t, err, "reading orders failed")

	aggregate, err := client.Orders().Aggregate(ctx)
	require.NoError(t, err, "aggregating orders failed")
	assert.NotNil(t, aggregate)
}

// TestBasemapsWorkflow lists mosaics and drills into quads for the first
// one.
func TestBasemapsWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	iterator, err := client.Mosaics().List(ctx, 3)
	require.NoError(t, err, "listing mosaics failed")

	mosaics, err := iterator.All(ctx)
	require.NoError(t, err, "reading mosaics failed")

	if len(mosaics) == 0 {
		t.Skip("no mosaics visible to this account")
	}

	mosaic, err := client.Mosaics().Get(ctx, mosaics[0].ID)
	require.NoError(t, err, "getting mosaic failed")
	assert.Equal(t, mosaics[0].ID, mosaic.ID)

	quads, err := client.Mosaics().ListQuads(ctx, mosaic.ID, mosaic.Bbox, 5)
	require.NoError(t, err, "listing quads failed")

	_, err = quads.All(ctx)
	require.NoError(t, err, "reading quads failed")
}
