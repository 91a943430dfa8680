// Package handlers defines the HTTP-layer error codes used by the admin
// surface. These codes supplement the HTTP status with a stable,
// machine-readable taxonomy that admin clients can branch on. Terminal
// pipeline failures on the dynamic surface do not use them (they answer
// with plain-text bodies); only an unreadable dynamic request body gets
// the bad_request envelope.
package handlers

const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
	ErrCodeInternal   = "internal_error"

	// Domain-specific:
	ErrCodeInvalidMultipart = "invalid_multipart"
	ErrCodeFileError        = "file_error"
	ErrCodeInvalidUtf8      = "invalid_utf8"
)
