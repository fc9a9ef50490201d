package terrascope

import (
	"encoding/json"
	"time"
)

// Links maps link names to their references as returned by the API.
// Values are either bare URL strings or objects with an href; both decode
// through Link.
type Links map[string]Link

// Link is a single hyperlink.
type Link struct {
	Href string `json:"href" yaml:"href"`
}

// UnmarshalJSON accepts either a bare string or an {"href": ...} object.
func (l *Link) UnmarshalJSON(data []byte) error {
	var href string
	if err := json.Unmarshal(data, &href); err == nil {
		l.Href = href

		return nil
	}

	type plain Link

	var p plain

	err := json.Unmarshal(data, &p)
	if err != nil {
		return err
	}

	*l = Link(p)

	return nil
}

// Geometry is a GeoJSON geometry, kept opaque; the SDK never interprets
// coordinates.
type Geometry map[string]interface{}

// Item is a single catalog item returned by Data API searches.
type Item struct {
	ID          string                 `json:"id"           yaml:"id"`
	ItemType    string                 `json:"item_type"    yaml:"item_type"`
	Geometry    Geometry               `json:"geometry"     yaml:"geometry"`
	Properties  map[string]interface{} `json:"properties"   yaml:"properties"`
	Permissions []string               `json:"_permissions" yaml:"_permissions"`
	Links       Links                  `json:"_links"       yaml:"_links"`
}

// Asset is a downloadable product of a catalog item.
type Asset struct {
	Type     string `json:"type"      yaml:"type"`
	Status   string `json:"status"    yaml:"status"`
	Location string `json:"location"  yaml:"location"`
	Links    Links  `json:"_links"    yaml:"_links"`
}

// Search is a saved Data API search.
type Search struct {
	ID        string                 `json:"id"          yaml:"id"`
	Name      string                 `json:"name"        yaml:"name"`
	ItemTypes []string               `json:"item_types"  yaml:"item_types"`
	Filter    map[string]interface{} `json:"filter"      yaml:"filter"`
	CreatedAt time.Time              `json:"created"     yaml:"created"`
	UpdatedAt time.Time              `json:"updated"     yaml:"updated"`
	Links     Links                  `json:"_links"      yaml:"_links"`
}

// SearchRequest describes a Data API search to create or run.
type SearchRequest struct {
	Name      string                 `json:"name,omitempty" yaml:"name,omitempty"`
	ItemTypes []string               `json:"item_types"     yaml:"item_types"`
	Filter    map[string]interface{} `json:"filter"         yaml:"filter"`
}

// Order is an imagery order processed asynchronously server-side.
type Order struct {
	ID          string                   `json:"id"            yaml:"id"`
	Name        string                   `json:"name"          yaml:"name"`
	State       string                   `json:"state"         yaml:"state"`
	CreatedOn   time.Time                `json:"created_on"    yaml:"created_on"`
	LastMessage string                   `json:"last_message"  yaml:"last_message"`
	Products    []map[string]interface{} `json:"products"      yaml:"products"`
	ErrorHints  []string                 `json:"error_hints"   yaml:"error_hints"`
	Links       Links                    `json:"_links"        yaml:"_links"`
}

// OrderRequest describes an order to place. Products, tools and delivery
// are built by callers; the SDK treats them as opaque payload.
type OrderRequest struct {
	Name         string                   `json:"name"                    yaml:"name"`
	SourceType   string                   `json:"source_type,omitempty"   yaml:"source_type,omitempty"`
	Products     []map[string]interface{} `json:"products"                yaml:"products"`
	Tools        []map[string]interface{} `json:"tools,omitempty"         yaml:"tools,omitempty"`
	Delivery     map[string]interface{}   `json:"delivery,omitempty"      yaml:"delivery,omitempty"`
	Notifications map[string]interface{}  `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// OrdersAggregate summarizes order counts by state.
type OrdersAggregate struct {
	Buckets []struct {
		State string `json:"state" yaml:"state"`
		Count int    `json:"count" yaml:"count"`
	} `json:"buckets" yaml:"buckets"`
}

// Subscription is a running data delivery subscription.
type Subscription struct {
	ID        string                 `json:"id"         yaml:"id"`
	Name      string                 `json:"name"       yaml:"name"`
	Status    string                 `json:"status"     yaml:"status"`
	Source    map[string]interface{} `json:"source"     yaml:"source"`
	Delivery  map[string]interface{} `json:"delivery"   yaml:"delivery"`
	CreatedAt time.Time              `json:"created"    yaml:"created"`
	UpdatedAt time.Time              `json:"updated"    yaml:"updated"`
	Links     Links                  `json:"_links"     yaml:"_links"`
}

// SubscriptionRequest describes a subscription to create or update.
type SubscriptionRequest struct {
	Name     string                 `json:"name"               yaml:"name"`
	Source   map[string]interface{} `json:"source"             yaml:"source"`
	Delivery map[string]interface{} `json:"delivery,omitempty" yaml:"delivery,omitempty"`
	Tools    []map[string]interface{} `json:"tools,omitempty"  yaml:"tools,omitempty"`
}

// SubscriptionResult is one delivery produced by a subscription.
type SubscriptionResult struct {
	ID        string                 `json:"id"         yaml:"id"`
	Status    string                 `json:"status"     yaml:"status"`
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	CreatedAt time.Time              `json:"created"    yaml:"created"`
}

// FeatureCollection is an OGC feature collection owned by the account.
type FeatureCollection struct {
	ID           string `json:"id"            yaml:"id"`
	Title        string `json:"title"         yaml:"title"`
	Description  string `json:"description"   yaml:"description"`
	FeatureCount int    `json:"feature_count" yaml:"feature_count"`
}

// Feature is a single OGC feature.
type Feature struct {
	ID         string                 `json:"id"         yaml:"id"`
	Geometry   Geometry               `json:"geometry"   yaml:"geometry"`
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
}

// Mosaic is a rendered basemap mosaic.
type Mosaic struct {
	ID           string    `json:"id"            yaml:"id"`
	Name         string    `json:"name"          yaml:"name"`
	Interval     string    `json:"interval"      yaml:"interval"`
	FirstAcquired time.Time `json:"first_acquired" yaml:"first_acquired"`
	LastAcquired time.Time `json:"last_acquired" yaml:"last_acquired"`
	Bbox         []float64 `json:"bbox"          yaml:"bbox"`
	Links        Links     `json:"_links"        yaml:"_links"`
}

// Quad is one tile of a mosaic grid.
type Quad struct {
	ID          string    `json:"id"           yaml:"id"`
	Bbox        []float64 `json:"bbox"         yaml:"bbox"`
	PercentCovered float64 `json:"percent_covered" yaml:"percent_covered"`
	Links       Links     `json:"_links"       yaml:"_links"`
}

// QuotaProduct is a product the account may reserve quota against.
type QuotaProduct struct {
	ID     int    `json:"id"      yaml:"id"`
	Title  string `json:"title"   yaml:"title"`
	Unit   string `json:"unit"    yaml:"unit"`
	Limit  float64 `json:"limit"  yaml:"limit"`
	Usage  float64 `json:"usage"  yaml:"usage"`
}

// QuotaReservation holds reserved quota for an AOI.
type QuotaReservation struct {
	ID        int       `json:"id"         yaml:"id"`
	AoiRefs   []string  `json:"aoi_refs"   yaml:"aoi_refs"`
	Amount    float64   `json:"amount"     yaml:"amount"`
	State     string    `json:"state"      yaml:"state"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// QuotaReservationRequest describes a reservation to create or estimate.
type QuotaReservationRequest struct {
	AoiRefs   []string `json:"aoi_refs"   yaml:"aoi_refs"`
	ProductID int      `json:"product_id" yaml:"product_id"`
}

// QuotaEstimate is the server's cost estimate for a reservation.
type QuotaEstimate struct {
	Amount float64 `json:"estimated_amount" yaml:"estimated_amount"`
}

// Report is an account usage report.
type Report struct {
	ID        string    `json:"id"         yaml:"id"`
	Name      string    `json:"name"       yaml:"name"`
	Type      string    `json:"type"       yaml:"type"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Links     Links     `json:"_links"     yaml:"_links"`
}

// TaskingOrder is a satellite tasking order.
type TaskingOrder struct {
	ID           string    `json:"id"            yaml:"id"`
	Name         string    `json:"name"          yaml:"name"`
	Status       string    `json:"status"        yaml:"status"`
	Geometry     Geometry  `json:"geometry"      yaml:"geometry"`
	StartTime    time.Time `json:"start_time"    yaml:"start_time"`
	EndTime      time.Time `json:"end_time"      yaml:"end_time"`
	CreatedTime  time.Time `json:"created_time"  yaml:"created_time"`
	Links        Links     `json:"_links"        yaml:"_links"`
}

// TaskingOrderRequest describes a tasking order to place.
type TaskingOrderRequest struct {
	Name      string    `json:"name"                 yaml:"name"`
	Geometry  Geometry  `json:"geometry"             yaml:"geometry"`
	StartTime time.Time `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"   yaml:"end_time,omitempty"`
}

// Feed is an analytics feed.
type Feed struct {
	ID          string    `json:"id"          yaml:"id"`
	Title       string    `json:"title"       yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created"     yaml:"created"`
	Links       Links     `json:"links"       yaml:"links"`
}

// AnalyticsSubscription ties an analytics feed to an AOI and time range.
type AnalyticsSubscription struct {
	ID        string    `json:"id"       yaml:"id"`
	Title     string    `json:"title"    yaml:"title"`
	FeedID    string    `json:"feedID"   yaml:"feedID"`
	CreatedAt time.Time `json:"created"  yaml:"created"`
	Links     Links     `json:"links"    yaml:"links"`
}

// Destination is a delivery destination (cloud bucket or similar).
type Destination struct {
	ID         string                 `json:"id"          yaml:"id"`
	Name       string                 `json:"name"        yaml:"name"`
	Type       string                 `json:"type"        yaml:"type"`
	Parameters map[string]interface{} `json:"parameters"  yaml:"parameters"`
	Archived   bool                   `json:"archived"    yaml:"archived"`
	Links      Links                  `json:"_links"      yaml:"_links"`
}

// DestinationRequest describes a destination to create or update.
type DestinationRequest struct {
	Name       string                 `json:"name,omitempty"       yaml:"name,omitempty"`
	Type       string                 `json:"type,omitempty"       yaml:"type,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Archived   *bool                  `json:"archived,omitempty"   yaml:"archived,omitempty"`
}
