// Package handlers – dedicated gRPC mock route.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-mock-server/internal/adapters"
)

// Grpc exposes the gRPC mock adapter on its own admin route. Unlike the
// adapter's fall-through behavior inside the dispatch pipeline, a miss
// here is a hard 404 with a JSON error body.
type Grpc struct {
	Adapter adapters.Grpc
}

// Call handles POST /grpc: a JSON envelope {service, method|rpc, input?}
// answered straight from the gRPC mock table.
func (g *Grpc) Call(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDynamicBody))
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read request body")
			return
		}
		body = data
	}

	res, err := g.Adapter.Respond(c.Request.Context(), body)
	if err != nil {
		c.Abort()
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mock not found"})
		return
	}
	c.Data(res.Status, "application/json", res.Body)
}
