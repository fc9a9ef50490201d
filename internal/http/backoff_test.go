package http_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tshttp "github.com/terrascope-io/terrascope-client/internal/http"
)

func TestRateLimitBackoff(t *testing.T) {
	t.Parallel()
	t.Run("exponential window with jitter", func(t *testing.T) {
		t.Parallel()

		waitMin := time.Second
		waitMax := 64 * time.Second

		for attemptNum := range 5 {
			t.Run(fmt.Sprintf("attempt %d", attemptNum), func(t *testing.T) {
				t.Parallel()

				// Jitter is random, so sample the window repeatedly.
				for range 50 {
					wait := tshttp.RateLimitBackoff(waitMin, waitMax, attemptNum, nil)

					lower := time.Duration(1<<uint(attemptNum+1)) * time.Second
					upper := lower + time.Second

					assert.GreaterOrEqual(t, wait, lower)
					assert.LessOrEqual(t, wait, upper)
				}
			})
		}
	})

	t.Run("cap bounds large attempts", func(t *testing.T) {
		t.Parallel()

		waitMax := 64 * time.Second

		for _, attemptNum := range []int{6, 10, 63, 1000} {
			wait := tshttp.RateLimitBackoff(time.Second, waitMax, attemptNum, nil)
			assert.Equal(t, waitMax, wait)
		}
	})

	t.Run("never below the minimum", func(t *testing.T) {
		t.Parallel()

		wait := tshttp.RateLimitBackoff(10*time.Second, 64*time.Second, 0, nil)
		assert.GreaterOrEqual(t, wait, 10*time.Second)
	})

	t.Run("shift does not overflow", func(t *testing.T) {
		t.Parallel()

		wait := tshttp.RateLimitBackoff(time.Second, 64*time.Second, 1<<30, nil)
		assert.Equal(t, 64*time.Second, wait)
	})
}
