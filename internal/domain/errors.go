package domain

import "errors"

var (
	// ErrFetchFailure marks network and HTTP errors while retrieving the feed.
	ErrFetchFailure = errors.New("feed fetch failed")

	// ErrMalformedDocument marks feed or dataset documents that are missing
	// required fields or cannot be decoded.
	ErrMalformedDocument = errors.New("malformed document")
)
