package terrascope

import (
	"context"
	"time"
)

// DataClient searches the imagery catalog.
type DataClient interface {
	QuickSearch(ctx context.Context, request *SearchRequest, limit int) (*Iterator[Item], error)
	CreateSearch(ctx context.Context, request *SearchRequest) (*Search, error)
	RunSearch(ctx context.Context, searchID string, limit int) (*Iterator[Item], error)
	GetItem(ctx context.Context, itemType, itemID string) (*Item, error)
	ListItemAssets(ctx context.Context, itemType, itemID string) (map[string]Asset, error)
}

// OrdersClient manages imagery orders.
type OrdersClient interface {
	Create(ctx context.Context, request *OrderRequest) (*Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, params *ListParams, limit int) (*Iterator[Order], error)
	Cancel(ctx context.Context, orderID string) error
	Aggregate(ctx context.Context) (*OrdersAggregate, error)
	Wait(ctx context.Context, orderID, state string, opts *WaitOptions) (string, error)
}

// SubscriptionsClient manages data delivery subscriptions.
type SubscriptionsClient interface {
	Create(ctx context.Context, request *SubscriptionRequest) (*Subscription, error)
	Get(ctx context.Context, subscriptionID string) (*Subscription, error)
	List(ctx context.Context, params *ListParams, limit int) (*Iterator[Subscription], error)
	Update(ctx context.Context, subscriptionID string, request *SubscriptionRequest) (*Subscription, error)
	Cancel(ctx context.Context, subscriptionID string) error
	ListResults(ctx context.Context, subscriptionID string, limit int) (*Iterator[SubscriptionResult], error)
}

// FeaturesClient manages OGC feature collections.
type FeaturesClient interface {
	ListCollections(ctx context.Context, limit int) (*Iterator[FeatureCollection], error)
	GetCollection(ctx context.Context, collectionID string) (*FeatureCollection, error)
	ListItems(ctx context.Context, collectionID string, limit int) (*Iterator[Feature], error)
	AddItems(ctx context.Context, collectionID string, features []Feature) ([]string, error)
}

// MosaicsClient reads basemap mosaics and their quads.
type MosaicsClient interface {
	List(ctx context.Context, limit int) (*Iterator[Mosaic], error)
	Get(ctx context.Context, mosaicID string) (*Mosaic, error)
	ListQuads(ctx context.Context, mosaicID string, bbox []float64, limit int) (*Iterator[Quad], error)
	GetQuad(ctx context.Context, mosaicID, quadID string) (*Quad, error)
}

// QuotaClient manages quota products and reservations.
type QuotaClient interface {
	GetProducts(ctx context.Context, limit int) (*Iterator[QuotaProduct], error)
	ListReservations(ctx context.Context, limit int) (*Iterator[QuotaReservation], error)
	CreateReservation(ctx context.Context, request *QuotaReservationRequest) (*QuotaReservation, error)
	EstimateReservation(ctx context.Context, request *QuotaReservationRequest) (*QuotaEstimate, error)
}

// ReportsClient reads account usage reports.
type ReportsClient interface {
	List(ctx context.Context, limit int) (*Iterator[Report], error)
	Get(ctx context.Context, reportID string) (*Report, error)
}

// TaskingClient manages satellite tasking orders.
type TaskingClient interface {
	CreateOrder(ctx context.Context, request *TaskingOrderRequest) (*TaskingOrder, error)
	GetOrder(ctx context.Context, orderID string) (*TaskingOrder, error)
	ListOrders(ctx context.Context, limit int) (*Iterator[TaskingOrder], error)
	CancelOrder(ctx context.Context, orderID string) error
	WaitForOrder(ctx context.Context, orderID, state string, opts *WaitOptions) (string, error)
}

// AnalyticsClient reads analytics feeds and their results.
type AnalyticsClient interface {
	ListFeeds(ctx context.Context, limit int) (*Iterator[Feed], error)
	GetFeed(ctx context.Context, feedID string) (*Feed, error)
	ListSubscriptions(ctx context.Context, feedID string, limit int) (*Iterator[AnalyticsSubscription], error)
	ListResults(ctx context.Context, subscriptionID string, limit int) (*Iterator[Feature], error)
}

// DestinationsClient manages delivery destinations.
type DestinationsClient interface {
	List(ctx context.Context, params *ListParams, limit int) (*Iterator[Destination], error)
	Get(ctx context.Context, destinationID string) (*Destination, error)
	Create(ctx context.Context, request *DestinationRequest) (*Destination, error)
	Update(ctx context.Context, destinationID string, request *DestinationRequest) (*Destination, error)
}

// CatalogClients groups the imagery catalog surfaces.
type CatalogClients interface {
	Data() DataClient
	Mosaics() MosaicsClient
	Features() FeaturesClient
}

// DeliveryClients groups the surfaces that move data to the customer.
type DeliveryClients interface {
	Orders() OrdersClient
	Subscriptions() SubscriptionsClient
	Destinations() DestinationsClient
}

// AccountClients groups account-level surfaces.
type AccountClients interface {
	Quota() QuotaClient
	Reports() ReportsClient
}

// AcquisitionClients groups surfaces that produce new imagery or analysis.
type AcquisitionClients interface {
	Tasking() TaskingClient
	Analytics() AnalyticsClient
}

// Client is the full Terrascope platform API surface.
type Client interface {
	CatalogClients
	DeliveryClients
	AccountClients
	AcquisitionClients
}

// Logger is the structured logging interface used by the HTTP layer and
// helpers.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config configures a Terrascope client.
//
// Per-request timeouts are controlled through the context passed to client
// methods. Retry behavior covers rate-limit responses only and is tuned via
// RetryMax/RetryWaitMax.
type Config struct {
	// APIEndpoint is the base URL of the platform API
	// (e.g. "https://api.terrascope.io"). A missing scheme defaults to
	// https and a trailing slash is trimmed.
	APIEndpoint string

	// APIKey authenticates every request as a Bearer token.
	APIKey string

	// RetryMax is the attempt budget for rate-limited requests. If 0 a
	// default is applied.
	RetryMax int

	// RetryWaitMax caps the backoff delay between retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is set.
	Debug bool

	// Logger receives structured log records from the HTTP layer.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache configures the optional client-side cache for static
	// resources. Nil disables caching.
	Cache *CacheConfig

	// Interceptors, if set, run around every request the client sends.
	Interceptors *InterceptorChain
}
