package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/buildinfo"
	"github.com/rubisco-sfa/rubiplot/pkg/cache"
)

const httpTimeout = 30 * time.Second

var userAgent = "rubiplot/" + buildinfo.Version

var (
	// ErrNotFound is returned when a package doesn't exist on the service.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with a standard timeout for service requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// URLEncode percent-encodes a string for use in URL paths and queries.
func URLEncode(s string) string { return url.QueryEscape(s) }
