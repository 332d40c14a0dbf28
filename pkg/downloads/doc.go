// Package downloads loads monthly package download counts.
//
// A [Series] is a time-sorted list of monthly counts. Series come from a
// [Source] such as the pypistats service, or from a flat CSV [Store] with
// columns "time,counts". A [Loader] reads the store when it exists and
// otherwise fetches from the source and writes the store, so the network
// is touched once per package until the file is deleted or a refresh is
// requested. A CSV produced by another tool can be dropped in place of the
// store file.
//
// [Release] markers annotate the series with version labels. A release
// without an explicit count takes the count of the month it falls in.
package downloads
