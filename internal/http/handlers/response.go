// Package handlers provides the HTTP handlers of the mock server: the
// admin surface (register/list/delete, gRPC mock calls) and the dynamic
// catch-all that feeds the dispatch pipeline.
//
// This file defines the response utilities shared across them. Admin
// validation failures use a structured JSON envelope with a stable `code`;
// terminal pipeline failures are written as short plain-text bodies
// ("Unauthorized\n", "Rate limit exceeded\n", …) because that is the wire
// contract dynamic clients are tested against.
//
// Example admin error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "invalid_multipart",
//	  "message": "invalid multipart form"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-mock-server/internal/domain"
	"github.com/tbourn/go-mock-server/internal/http/middleware"
)

// ErrorResponse is the JSON error envelope returned by admin endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"invalid_multipart"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"invalid multipart form"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(). External packages (e.g., router
// setup) should call Fail to return consistent envelopes without depending
// on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failPlain writes one of the plain-text terminal bodies of the dynamic
// surface and aborts.
func failPlain(c *gin.Context, status int, body string) {
	c.String(status, body)
	c.Abort()
}

// FailDomain maps a pipeline sentinel to its HTTP status and plain-text
// body. Unknown errors become a framework-default 500.
func FailDomain(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		failPlain(c, http.StatusUnauthorized, "Unauthorized\n")
	case errors.Is(err, domain.ErrRateLimited):
		failPlain(c, http.StatusTooManyRequests, "Rate limit exceeded\n")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		failPlain(c, http.StatusMethodNotAllowed, "Method not allowed\n")
	case errors.Is(err, domain.ErrNotFound):
		failPlain(c, http.StatusNotFound, "Resource not found\n")
	case errors.Is(err, domain.ErrInvalidGraphQL):
		failPlain(c, http.StatusBadRequest, "Invalid GraphQL request\n")
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
