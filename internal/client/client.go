// Package client implements the Terrascope platform API surfaces on top
// of the resilient HTTP executor.
package client

import (
	"fmt"

	"github.com/terrascope-io/terrascope-client/internal/auth"
	"github.com/terrascope-io/terrascope-client/internal/constants"
	"github.com/terrascope-io/terrascope-client/internal/http"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// Client implements terrascope.Client.
type Client struct {
	httpClient *http.Client
	logger     terrascope.Logger

	data          terrascope.DataClient
	orders        terrascope.OrdersClient
	subscriptions terrascope.SubscriptionsClient
	features      terrascope.FeaturesClient
	mosaics       terrascope.MosaicsClient
	quota         terrascope.QuotaClient
	reports       terrascope.ReportsClient
	tasking       terrascope.TaskingClient
	analytics     terrascope.AnalyticsClient
	destinations  terrascope.DestinationsClient
}

// New creates a platform API client from configuration.
func New(config *terrascope.Config) (*Client, error) {
	if config == nil {
		return nil, terrascope.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, terrascope.ErrAPIEndpointRequired
	}

	var keyProvider auth.KeyProvider
	if config.APIKey != "" {
		keyProvider = auth.NewStaticKeyProvider(config.APIKey)
	} else {
		keyProvider = &auth.EnvKeyProvider{}
	}

	opts, err := httpOptions(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: http.NewClient(config.APIEndpoint, keyProvider, opts...),
		logger:     config.Logger,
	}

	client.initializeSubsystemClients()

	return client, nil
}

// httpOptions translates SDK configuration into executor options.
func httpOptions(config *terrascope.Config) ([]http.Option, error) {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax <= 0 {
			retryMax = constants.DefaultRetryMax
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(retryMax, constants.DefaultRetryWaitMin, waitMax))
	}

	if config.Interceptors != nil {
		opts = append(opts, http.WithInterceptors(config.Interceptors))
	}

	if config.Cache != nil {
		cache, err := terrascope.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building cache: %w", err)
		}

		opts = append(opts, http.WithCache(cache, config.Cache.EntryTTL()))
	}

	return opts, nil
}

// initializeSubsystemClients wires each subsystem to the shared executor.
func (c *Client) initializeSubsystemClients() {
	c.data = NewDataClient(c.httpClient)
	c.orders = NewOrdersClient(c.httpClient)
	c.subscriptions = NewSubscriptionsClient(c.httpClient)
	c.features = NewFeaturesClient(c.httpClient)
	c.mosaics = NewMosaicsClient(c.httpClient)
	c.quota = NewQuotaClient(c.httpClient)
	c.reports = NewReportsClient(c.httpClient)
	c.tasking = NewTaskingClient(c.httpClient)
	c.analytics = NewAnalyticsClient(c.httpClient)
	c.destinations = NewDestinationsClient(c.httpClient)
}

// Data implements terrascope.Client.Data.
func (c *Client) Data() terrascope.DataClient {
	return c.data
}

// Orders implements terrascope.Client.Orders.
func (c *Client) Orders() terrascope.OrdersClient {
	return c.orders
}

// Subscriptions implements terrascope.Client.Subscriptions.
func (c *Client) Subscriptions() terrascope.SubscriptionsClient {
	return c.subscriptions
}

// Features implements terrascope.Client.Features.
func (c *Client) Features() terrascope.FeaturesClient {
	return c.features
}

// Mosaics implements terrascope.Client.Mosaics.
func (c *Client) Mosaics() terrascope.MosaicsClient {
	return c.mosaics
}

// Quota implements terrascope.Client.Quota.
func (c *Client) Quota() terrascope.QuotaClient {
	return c.quota
}

// Reports implements terrascope.Client.Reports.
func (c *Client) Reports() terrascope.ReportsClient {
	return c.reports
}

// Tasking implements terrascope.Client.Tasking.
func (c *Client) Tasking() terrascope.TaskingClient {
	return c.tasking
}

// Analytics implements terrascope.Client.Analytics.
func (c *Client) Analytics() terrascope.AnalyticsClient {
	return c.analytics
}

// Destinations implements terrascope.Client.Destinations.
func (c *Client) Destinations() terrascope.DestinationsClient {
	return c.destinations
}
