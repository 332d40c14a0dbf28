// Package anaconda provides an HTTP client for the anaconda.org package API.
//
// # Overview
//
// anaconda.org hosts conda packages grouped by channel. The package
// endpoint lists every uploaded file with its version and upload time.
// This package turns that listing into release markers for the download
// timeline: each version is dated by its earliest upload.
//
// # Usage
//
//	client := anaconda.NewClient(fileCache, 24*time.Hour)
//	releases, err := client.Releases(ctx, "conda-forge", "ilamb", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Release counts are left unset so they are read from the download series
// the markers are drawn on.
package anaconda
