// Package query turns an untyped set of listing search parameters into a
// composed, not-yet-executed query against the listings data set.
//
// A search resolves a listing kind from the "market" or "type" parameter,
// asks a Backend for a fresh query object of that kind, then applies the
// kind's filters in a fixed order. Each filter fires only when its governing
// parameter is present. The resulting Relation is handed back to the caller,
// which decides when and how to execute it.
//
// Nothing in this package performs I/O, blocks, or logs. The filter tables
// are package-level values built once at init and only read afterwards, so
// a Searcher may be shared freely between goroutines.
package query
