// Package constants centralizes tuning values shared across the SDK.
package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Only rate-limited responses are retried.
const (
	// DefaultRetryMax is the default rate-limit retry budget.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the floor for a single backoff pause.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax caps a single backoff pause.
	DefaultRetryWaitMax = 64 * time.Second
)

// HTTP status boundaries.
const (
	// FirstErrorStatus is the lowest status treated as an error.
	FirstErrorStatus = 300
)

// Pagination defaults.
const (
	// DefaultPageSize is the server page size requested by list helpers.
	DefaultPageSize = 50
)

// Client identification.
const (
	// DefaultUserAgent identifies the SDK on the wire.
	DefaultUserAgent = "terrascope-client-go"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
