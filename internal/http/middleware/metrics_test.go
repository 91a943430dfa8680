package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/probe", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/probe", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/probe", "200"))
	if after != before+1 {
		t.Fatalf("counter did not increment: before=%v after=%v", before, after)
	}
}

func TestMetricsDynamicTrafficSharesLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", dynamicPathLabel, "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/any/unmatched/mock/path", nil))

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", dynamicPathLabel, "404"))
	if after != before+1 {
		t.Fatalf("dynamic traffic should fold into %q: before=%v after=%v", dynamicPathLabel, before, after)
	}
}
