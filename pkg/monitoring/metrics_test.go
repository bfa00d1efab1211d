package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// One collector for the whole test; registration on the global registry is
// per-name.
func TestMetricsCollector(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mc := NewMetricsCollector("monitor-test", "v1", "abc123")

	counter := mc.NewCounter("posts_total", "Total posts", []string{"status"})
	counter.WithLabelValues("ok").Inc()
	if got := testutil.ToFloat64(counter.WithLabelValues("ok")); got != 1 {
		t.Errorf("counter = %v, want 1", got)
	}

	router := gin.New()
	router.Use(mc.MetricsMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", mc.Handler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ping returned %d", w.Code)
	}
	if got := testutil.ToFloat64(mc.httpRequestsTotal.WithLabelValues("GET", "/ping", "200")); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	if !strings.Contains(body, "monitor_test_posts_total") {
		t.Error("expected the sanitized service prefix on exposed metrics")
	}
	if !strings.Contains(body, `monitor_test_service_info{commit="abc123",version="v1"} 1`) {
		t.Error("expected the service_info gauge with version labels")
	}
}
