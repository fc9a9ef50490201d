package terrascope

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Request represents an HTTP request that can be intercepted.
type Request struct {
	Method   string
	URL      string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests before they are sent.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"url":         req.URL,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// RateLimitInterceptor implements client-side rate limiting ahead of the
// server's own rate limiter, so well-behaved batch jobs rarely see a 429.
func RateLimitInterceptor(requestsPerSecond int) RequestInterceptor {
	// Simple token bucket implementation
	bucket := make(chan struct{}, requestsPerSecond)

	// Fill the bucket initially
	for range requestsPerSecond {
		bucket <- struct{}{}
	}

	// Refill the bucket periodically
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(requestsPerSecond))
		defer ticker.Stop()

		for range ticker.C {
			select {
			case bucket <- struct{}{}:
			default:
				// Bucket is full
			}
		}
	}()

	return func(ctx context.Context, req *Request) error {
		select {
		case <-bucket:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}
