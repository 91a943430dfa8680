// Package domain – terminal error kinds raised by the dispatch pipeline.
//
// Each gate of the pipeline can raise exactly one of these sentinels, and
// the HTTP layer maps each to a single status code. The pipeline never
// converts one kind into another; non-terminal failures (an uploads file
// that cannot be deleted, a GraphQL parse that falls back to token
// splitting) are logged and swallowed where they occur.
package domain

import "errors"

var (
	// ErrNotFound indicates no endpoint is registered under the request's
	// canonical key, or the stored body could not be read.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the Authorization header failed validation
	// against the endpoint's auth policy.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMethodNotAllowed indicates the request method is not in the
	// descriptor's method list.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrRateLimited indicates the fixed-window budget for (path, method)
	// is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidGraphQL indicates a request body that engaged the GraphQL
	// adapter but could not be interpreted as a GraphQL envelope.
	ErrInvalidGraphQL = errors.New("invalid graphql request")

	// ErrInvalidMultipart indicates a malformed multipart registration form.
	ErrInvalidMultipart = errors.New("invalid multipart form")

	// ErrFile indicates the uploaded body could not be persisted.
	ErrFile = errors.New("file write failed")

	// ErrUtf8 indicates a form field that was expected to be text was not
	// valid UTF-8.
	ErrUtf8 = errors.New("invalid utf-8 in form field")
)
