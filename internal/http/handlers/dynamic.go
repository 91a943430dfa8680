// Package handlers – the dynamic catch-all that feeds the dispatch
// pipeline.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-mock-server/internal/dispatch"
	"github.com/tbourn/go-mock-server/internal/domain"
	"github.com/tbourn/go-mock-server/internal/http/middleware"
)

// maxDynamicBody caps how much of a dynamic request body is read into
// memory for adapter inspection.
const maxDynamicBody = 5 << 20

// Dynamic serves every path the admin surface does not claim. Each request
// runs through the dispatch pipeline; when the pipeline reports no
// registered endpoint and a static area is configured, GET requests fall
// back to static files (the bundled admin UI).
type Dynamic struct {
	Pipeline *dispatch.Pipeline

	// StaticDir is the optional static-file area; "" disables the
	// fallback.
	StaticDir string
}

// Handle is installed as the router's NoRoute handler.
func (d *Dynamic) Handle(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDynamicBody))
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read request body")
			return
		}
		body = data
	}

	res, err := d.Pipeline.Serve(c.Request.Context(), dispatch.Request{
		Method:     c.Request.Method,
		URL:        c.Request.URL,
		AuthHeader: c.GetHeader("Authorization"),
		Body:       body,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && d.serveStatic(c) {
			return
		}
		if c.Request.Context().Err() != nil {
			// Client is gone; nothing useful left to write.
			c.Abort()
			return
		}
		middleware.LoggerFrom(c).Warn().
			Str("path", c.Request.URL.Path).
			Err(err).
			Msg("dynamic request rejected")
		FailDomain(c, err)
		return
	}

	c.Data(res.Status, "application/json", res.Body)
}

// serveStatic answers a GET for an unregistered path from the static area
// when one is configured and the file exists. Reports whether it wrote a
// response.
func (d *Dynamic) serveStatic(c *gin.Context) bool {
	if d.StaticDir == "" || c.Request.Method != http.MethodGet {
		return false
	}
	name := filepath.Join(d.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return false
	}
	c.File(name)
	return true
}
