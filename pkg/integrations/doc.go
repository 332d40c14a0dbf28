// Package integrations provides HTTP clients for package download statistics
// services.
//
// Each service has its own subpackage:
//
//   - [pypistats]: daily download counts from pypistats.org
//   - [anaconda]: release files and upload times from anaconda.org
//
// # Client Pattern
//
// All clients embed [Client], which provides response caching through a
// [cache.Cache], retry with exponential backoff for transient failures, and
// status-code mapping to [ErrNotFound] and [ErrNetwork]:
//
//	c := pypistats.NewClient(fileCache, cache.TTLHTTP)
//	daily, err := c.Daily(ctx, "ilamb", false) // false = use cache
//
// [pypistats]: github.com/rubisco-sfa/rubiplot/pkg/integrations/pypistats
// [anaconda]: github.com/rubisco-sfa/rubiplot/pkg/integrations/anaconda
// [cache.Cache]: github.com/rubisco-sfa/rubiplot/pkg/cache.Cache
package integrations
