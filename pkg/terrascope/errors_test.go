package terrascope_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

func TestNewAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantTitle string
		check     func(error) bool
	}{
		{"bad request", http.StatusBadRequest, "malformed filter", terrascope.TitleBadQuery, terrascope.IsBadQuery},
		{"unauthorized", http.StatusUnauthorized, "", terrascope.TitleInvalidAPIKey, terrascope.IsInvalidAPIKey},
		{"forbidden", http.StatusForbidden, "", terrascope.TitleNoPermission, terrascope.IsNoPermission},
		{"not found", http.StatusNotFound, "", terrascope.TitleMissingResource, terrascope.IsMissingResource},
		{"conflict", http.StatusConflict, "", terrascope.TitleConflict, terrascope.IsConflict},
		{"rate limited", http.StatusTooManyRequests, "slow down", terrascope.TitleTooManyRequests, terrascope.IsTooManyRequests},
		{"quota exceeded", http.StatusTooManyRequests, "monthly quota exceeded", terrascope.TitleOverQuota, terrascope.IsOverQuota},
		{"quota is matched case-insensitively", http.StatusTooManyRequests, "QUOTA limit hit", terrascope.TitleOverQuota, terrascope.IsOverQuota},
		{"server error", http.StatusInternalServerError, "", terrascope.TitleServerError, terrascope.IsServerError},
		{"bad gateway falls back to generic", http.StatusBadGateway, "", terrascope.TitleAPIError, nil},
		{"teapot falls back to generic", http.StatusTeapot, "", terrascope.TitleAPIError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := terrascope.NewAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.wantTitle, err.Title)

			if tt.check != nil {
				assert.True(t, tt.check(err))
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	withDetail := &terrascope.APIError{Status: 404, Title: terrascope.TitleMissingResource, Detail: "no such order"}
	assert.Equal(t, "MissingResource: no such order (status: 404)", withDetail.Error())

	withoutDetail := &terrascope.APIError{Status: 500, Title: terrascope.TitleServerError}
	assert.Equal(t, "ServerError (status: 500)", withoutDetail.Error())
}

func TestAPIError_DetailTrimmed(t *testing.T) {
	t.Parallel()

	err := terrascope.NewAPIError(http.StatusBadRequest, []byte("  bad filter\n"))
	assert.Equal(t, "bad filter", err.Detail)
}

func TestErrorChecks(t *testing.T) {
	t.Parallel()

	t.Run("matches through wrapping", func(t *testing.T) {
		t.Parallel()

		apiErr := terrascope.NewAPIError(http.StatusNotFound, nil)
		wrapped := fmt.Errorf("getting order: %w", apiErr)

		assert.True(t, terrascope.IsMissingResource(wrapped))
		assert.False(t, terrascope.IsConflict(wrapped))
	})

	t.Run("rejects non-API errors", func(t *testing.T) {
		t.Parallel()

		assert.False(t, terrascope.IsServerError(assert.AnError))
		assert.False(t, terrascope.IsServerError(nil))
	})

	t.Run("quota and throttling are distinct", func(t *testing.T) {
		t.Parallel()

		quota := terrascope.NewAPIError(http.StatusTooManyRequests, []byte("quota reached"))
		assert.True(t, terrascope.IsOverQuota(quota))
		assert.False(t, terrascope.IsTooManyRequests(quota))

		throttled := terrascope.NewAPIError(http.StatusTooManyRequests, []byte("retry later"))
		assert.True(t, terrascope.IsTooManyRequests(throttled))
		assert.False(t, terrascope.IsOverQuota(throttled))
	})
}

func TestIsQuotaBody(t *testing.T) {
	t.Parallel()

	assert.True(t, terrascope.IsQuotaBody([]byte(`{"detail":"Quota exceeded for plan"}`)))
	assert.True(t, terrascope.IsQuotaBody([]byte("OVER QUOTA")))
	assert.False(t, terrascope.IsQuotaBody([]byte("rate limit exceeded")))
	assert.False(t, terrascope.IsQuotaBody(nil))
}
