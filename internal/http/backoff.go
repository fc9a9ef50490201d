package http

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

// RateLimitBackoff computes the pause before retry attempt attemptNum
// (0-based, as retryablehttp counts): 2^attempt seconds plus up to one
// second of jitter, hard-capped at waitMax. waitMin is accepted for
// signature compatibility; the exponential floor always dominates it.
func RateLimitBackoff(waitMin, waitMax time.Duration, attemptNum int, resp *http.Response) time.Duration {
	attempt := attemptNum + 1

	if attempt > maxBackoffShift {
		attempt = maxBackoffShift
	}

	wait := time.Duration(1<<uint(attempt))*time.Second + rand.N(time.Second)
	if wait > waitMax {
		wait = waitMax
	}

	if wait < waitMin {
		wait = waitMin
	}

	return wait
}

// maxBackoffShift bounds the exponent so the shift cannot overflow; the
// cap makes larger exponents indistinguishable anyway.
const maxBackoffShift = 16

// encodeBody renders a request body as JSON bytes. Raw byte slices pass
// through so callers can send pre-encoded payloads.
func encodeBody(body interface{}) ([]byte, error) {
	if raw, ok := body.([]byte); ok {
		return raw, nil
	}

	if raw, ok := body.(json.RawMessage); ok {
		return raw, nil
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return encoded, nil
}
