package domain

import "errors"

var (
	// ErrEmptyQuery is returned when a search is attempted with an empty query
	ErrEmptyQuery = errors.New("search query must not be empty")

	// ErrUpstreamTimeout is returned when one page call exceeded its deadline
	ErrUpstreamTimeout = errors.New("catalog API request timed out")

	// ErrUpstreamFailure is returned when the catalog API responds with a
	// non-success status or an unparseable body
	ErrUpstreamFailure = errors.New("catalog API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
