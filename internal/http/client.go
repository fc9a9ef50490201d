// Package http implements the resilient request executor every Terrascope
// API call routes through. It retries rate-limited requests with capped
// exponential backoff and translates HTTP statuses into the SDK's typed
// error taxonomy.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/terrascope-io/terrascope-client/internal/auth"
	"github.com/terrascope-io/terrascope-client/internal/constants"
	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// Request fully describes one logical API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the wrapper returned for successful requests.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against the platform API. It holds no per-call
// mutable state; each call's retry bookkeeping lives on that call's stack,
// so a single Client may be shared by any number of goroutines.
type Client struct {
	baseURL      string
	keyProvider  auth.KeyProvider
	retryClient  *retryablehttp.Client
	logger       terrascope.Logger
	debug        bool
	userAgent    string
	cache        terrascope.Cache
	cacheTTL     time.Duration
	interceptors *terrascope.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger terrascope.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the rate-limit retry budget and backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithHTTPClient substitutes the underlying standard HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient = httpClient
	}
}

// WithInterceptors installs an interceptor chain run around every request.
func WithInterceptors(chain *terrascope.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache installs a cache for static-resource GETs. Paged fetches and
// state polls bypass it unconditionally.
func WithCache(cache terrascope.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient creates a client for the API rooted at baseURL. A nil key
// provider sends unauthenticated requests.
func NewClient(baseURL string, keyProvider auth.KeyProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry
	retryClient.Backoff = RateLimitBackoff
	// Keep the final 429 response so it can be mapped to a typed error
	// instead of the library's "giving up" error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		keyProvider: keyProvider,
		retryClient: retryClient,
		userAgent:   constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.retryClient.RequestLogHook = client.logRequest
	client.retryClient.ResponseLogHook = client.logResponse

	return client
}

// checkRetry retries only rate-limit responses. Anything else, including
// network errors, propagates on first occurrence; a 429 whose body
// indicates an exceeded quota is terminal as well.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return false, err
	}

	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}

	body, readErr := peekBody(resp)
	if readErr != nil {
		return false, readErr
	}

	if terrascope.IsQuotaBody(body) {
		return false, nil
	}

	rateLimitRetries.Inc()

	return true, nil
}

// peekBody reads the response body and restores it for later consumers.
func peekBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

// Do executes the request, retrying rate-limited attempts, and maps any
// final non-success status onto the typed error taxonomy.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, terrascope.ErrRequestRequired
	}

	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	interceptReq := &terrascope.Request{
		Method:  req.Method,
		URL:     fullURL,
		Headers: httpReq.Header,
	}

	if c.interceptors != nil {
		if err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq); err != nil {
			return nil, err
		}

		httpReq.Header = interceptReq.Headers
	}

	started := time.Now()

	resp, err := c.retryClient.Do(httpReq)
	if err != nil {
		requestErrors.WithLabelValues("network").Inc()

		return nil, fmt.Errorf("executing %s %s: %w", req.Method, fullURL, err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	requestDuration.WithLabelValues(req.Method).Observe(time.Since(started).Seconds())
	requestsTotal.WithLabelValues(req.Method, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var apiErr error
	if resp.StatusCode >= constants.FirstErrorStatus {
		mapped := terrascope.NewAPIError(resp.StatusCode, body)
		requestErrors.WithLabelValues(mapped.Title).Inc()
		apiErr = mapped
	}

	if c.interceptors != nil {
		interceptResp := &terrascope.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       body,
			Error:      apiErr,
		}

		if err := c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, interceptResp); err != nil {
			return response, err
		}
	}

	if apiErr != nil {
		return response, apiErr
	}

	return response, nil
}

// buildURL resolves the request path against the base URL. Absolute URLs
// (next-page references) pass through untouched apart from extra query
// values.
func (c *Client) buildURL(req *Request) (string, error) {
	raw := req.Path
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = c.baseURL + req.Path
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing request URL %q: %w", raw, err)
	}

	if len(req.Query) > 0 {
		query := parsed.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

// buildRequest assembles the rewindable retryable request with headers and
// auth applied.
func (c *Client) buildRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var body []byte

	if req.Body != nil {
		encoded, err := encodeBody(req.Body)
		if err != nil {
			return nil, err
		}

		body = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.keyProvider != nil {
		key, err := c.keyProvider.Key(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving API key: %w", err)
		}

		if key != "" {
			httpReq.Header.Set("Authorization", "Bearer "+key)
		}
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	return httpReq, nil
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"attempt": attempt,
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method": resp.Request.Method,
		"url":    resp.Request.URL.String(),
		"status": resp.StatusCode,
	})
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// GetCached issues a GET request through the configured cache. Only static
// resources should come through here; the cache is keyed by the resolved
// URL and stores the raw body.
func (c *Client) GetCached(ctx context.Context, path string, query url.Values) (*Response, error) {
	if c.cache == nil {
		return c.Get(ctx, path, query)
	}

	key, err := c.buildURL(&Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	if entry, err := c.cache.Get(ctx, key); err == nil {
		cacheHits.Inc()

		return &Response{StatusCode: http.StatusOK, Body: entry.Data}, nil
	}

	cacheMisses.Inc()

	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return resp, err
	}

	_ = c.cache.Set(ctx, key, &terrascope.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
		ETag:      resp.Headers.Get("ETag"),
	})

	return resp, nil
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// FetchPage implements terrascope.PageFetcher. Page fetches always hit the
// network; pages are never cached across consumers.
func (c *Client) FetchPage(ctx context.Context, ref string) ([]byte, error) {
	resp, err := c.Get(ctx, ref, nil)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}
