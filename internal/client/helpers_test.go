package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/terrascope-io/terrascope-client/internal/auth"
	tshttp "github.com/terrascope-io/terrascope-client/internal/http"
)

// newExecutor builds an HTTP executor pointed at a test server.
func newExecutor(t *testing.T, handler http.Handler) (*tshttp.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return tshttp.NewClient(server.URL, auth.NewStaticKeyProvider("test-key")), server
}
