// Package pypistats provides an HTTP client for the pypistats.org API.
//
// # Overview
//
// pypistats.org publishes daily download counts for packages on the Python
// Package Index. This package fetches the "overall" series for a package
// and aggregates it into monthly totals for the download timeline.
//
// # Usage
//
//	client := pypistats.NewClient(fileCache, 24*time.Hour)
//	series, err := client.Monthly(ctx, "ilamb", false) // false = use cache
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Mirrors
//
// The service reports downloads with and without mirror traffic. Only the
// "without_mirrors" category is used unless the client is created with
// [Client.WithMirrors].
//
// # Caching
//
// Daily responses are cached in the shared HTTP cache for the TTL given to
// [NewClient]. Pass refresh=true to bypass the cache.
//
// The service only keeps a limited window of recent history, so a long
// timeline usually comes from a stats file kept on disk rather than from a
// single fetch.
package pypistats
