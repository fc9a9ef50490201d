package terrascope

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error titles assigned to API errors by HTTP status.
const (
	TitleBadQuery        = "BadQuery"
	TitleInvalidAPIKey   = "InvalidAPIKey"
	TitleNoPermission    = "NoPermission"
	TitleMissingResource = "MissingResource"
	TitleConflict        = "Conflict"
	TitleTooManyRequests = "TooManyRequests"
	TitleOverQuota       = "OverQuota"
	TitleServerError     = "ServerError"
	TitleAPIError        = "APIError"
)

// APIError represents an error response from the Terrascope API.
type APIError struct {
	Status int    `json:"status" yaml:"status"`
	Title  string `json:"title"  yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status: %d)", e.Title, e.Status)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Title, e.Detail, e.Status)
}

// NewAPIError builds the typed error for a non-success HTTP response. The
// title is selected by status code; a 429 whose body mentions quota is
// classified as OverQuota rather than ordinary throttling.
func NewAPIError(status int, body []byte) *APIError {
	title := TitleAPIError

	switch status {
	case http.StatusBadRequest:
		title = TitleBadQuery
	case http.StatusUnauthorized:
		title = TitleInvalidAPIKey
	case http.StatusForbidden:
		title = TitleNoPermission
	case http.StatusNotFound:
		title = TitleMissingResource
	case http.StatusConflict:
		title = TitleConflict
	case http.StatusTooManyRequests:
		title = TitleTooManyRequests
		if IsQuotaBody(body) {
			title = TitleOverQuota
		}
	case http.StatusInternalServerError:
		title = TitleServerError
	}

	return &APIError{
		Status: status,
		Title:  title,
		Detail: strings.TrimSpace(string(body)),
	}
}

// IsQuotaBody reports whether a rate-limit response body indicates an
// exceeded quota rather than transient throttling.
func IsQuotaBody(body []byte) bool {
	return strings.Contains(strings.ToLower(string(body)), "quota")
}

func hasTitle(err error, title string) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Title == title
	}

	return false
}

// IsBadQuery checks if the error is a bad query error.
func IsBadQuery(err error) bool {
	return hasTitle(err, TitleBadQuery)
}

// IsInvalidAPIKey checks if the error is an authentication error.
func IsInvalidAPIKey(err error) bool {
	return hasTitle(err, TitleInvalidAPIKey)
}

// IsNoPermission checks if the error is an authorization error.
func IsNoPermission(err error) bool {
	return hasTitle(err, TitleNoPermission)
}

// IsMissingResource checks if the error is a not found error.
func IsMissingResource(err error) bool {
	return hasTitle(err, TitleMissingResource)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return hasTitle(err, TitleConflict)
}

// IsTooManyRequests checks if the error is a rate limit error.
func IsTooManyRequests(err error) bool {
	return hasTitle(err, TitleTooManyRequests)
}

// IsOverQuota checks if the error is an exceeded quota error.
func IsOverQuota(err error) bool {
	return hasTitle(err, TitleOverQuota)
}

// IsServerError checks if the error is a server error.
func IsServerError(err error) bool {
	return hasTitle(err, TitleServerError)
}

// Client-side static errors. These are local usage or protocol failures,
// distinct from server-reported API errors.
var (
	// ErrNoMoreItems is returned by Iterator.Next once a paged sequence is
	// exhausted.
	ErrNoMoreItems = errors.New("no more items")

	// ErrPagingCycle is returned when a page's next reference repeats the
	// reference that fetched it.
	ErrPagingCycle = errors.New("pagination cycle detected")

	// ErrWaitExceeded is returned when a waiter runs out of poll attempts
	// before the resource reaches a target or terminal state.
	ErrWaitExceeded = errors.New("exceeded wait attempts")

	// ErrUnknownState is returned when a state name is not part of the
	// resource's state sequence.
	ErrUnknownState = errors.New("unknown state")
)

// Static errors shared across the SDK and CLI.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrRequestRequired     = errors.New("request is required")
	ErrPageFetcherRequired = errors.New("page fetcher is required")
	ErrStateFetchRequired  = errors.New("state fetch function is required")
	ErrBadQueryValue       = errors.New("invalid query value")
)
