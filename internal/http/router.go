// Package httpapi wires the HTTP transport (Gin) to the mock server's
// registries, middleware, and route handlers. It centralizes cross-cutting
// concerns such as tracing, correlation IDs, logging/redaction, panic
// recovery, metrics, CORS, security headers, and admin-surface rate
// limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Every path the admin surface does not claim is dynamic traffic
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/go-mock-server/internal/config"
	"github.com/tbourn/go-mock-server/internal/dispatch"
	"github.com/tbourn/go-mock-server/internal/http/handlers"
	"github.com/tbourn/go-mock-server/internal/http/middleware"
	"github.com/tbourn/go-mock-server/internal/registry"
	"github.com/tbourn/go-mock-server/internal/store"
)

// Deps bundles the process-wide tables and the uploads store the routes
// operate on. Everything is constructed once in main and shared.
type Deps struct {
	Endpoints *registry.Endpoints
	Ledger    *registry.RateLedger
	Mocks     *registry.GrpcMocks
	Store     *store.Store
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given
// Gin engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs, Authorization masked
//  4. Recovery: capture panics after logger
//  5. Metrics
//  6. CORS (any origin unless an allowlist is configured) and security headers
//
// The admin routes additionally carry a token-bucket edge limiter per
// client IP and, for /register, a multipart body cap. The per-endpoint
// fixed-window budgets of dynamic traffic live in the dispatch pipeline,
// not here.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. Dynamic endpoints receive real
	// Authorization headers; they must never reach the logs.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 6) CORS posture: the mock server is a development tool and allows
	// any origin unless explicitly restricted.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: handlers ← registries/store
	admin := &handlers.Admin{Endpoints: deps.Endpoints, Mocks: deps.Mocks, Store: deps.Store}
	pipeline := dispatch.New(deps.Endpoints, deps.Ledger, deps.Store, deps.Mocks)
	dynamic := &handlers.Dynamic{Pipeline: pipeline, StaticDir: cfg.StaticDir}
	grpc := &handlers.Grpc{Adapter: pipeline.Grpc}

	// Admin surface, behind the per-IP edge limiter.
	rl := middleware.NewRateLimiter(cfg.AdminRateRPS, cfg.AdminRateBurst, middleware.KeyByClientIP())
	api := r.Group("", rl.Handler())
	{
		api.POST("/register", limitBody(cfg.MaxUploadBytes), admin.Register)
		api.GET("/list", gzip.Gzip(gzip.DefaultCompression), admin.List)
		api.DELETE("/delete/*path", admin.Delete)
		api.POST("/grpc", grpc.Call)
	}

	// Everything else is dynamic traffic.
	r.NoRoute(dynamic.Handle)
}

// limitBody returns a Gin middleware that caps the request body size using
// http.MaxBytesReader. Requests exceeding the cap will cause downstream
// body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
