package monitoring

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestHealthChecker_Basic(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: "healthy"} })
	status := hc.CheckHealth()
	if status.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
}

func TestHealthChecker_DegradedWins(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: "healthy"} })
	hc.AddCheck("limping", func() CheckResult { return CheckResult{Status: "degraded"} })
	if status := hc.CheckHealth(); status.Status != "degraded" {
		t.Fatalf("expected degraded, got %q", status.Status)
	}
}

func TestHealthChecker_UnhealthyWins(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("limping", func() CheckResult { return CheckResult{Status: "degraded"} })
	hc.AddCheck("down", func() CheckResult { return CheckResult{Status: "unhealthy"} })
	if status := hc.CheckHealth(); status.Status != "unhealthy" {
		t.Fatalf("expected unhealthy, got %q", status.Status)
	}
}

func TestHTTPServiceHealthCheck(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) }))
	defer s.Close()
	res := HTTPServiceHealthCheck("svc", s.URL)()
	if res.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
}

func TestConfigurationHealthCheck_Missing(t *testing.T) {
	res := ConfigurationHealthCheck(map[string]string{"API_KEY": ""})()
	if res.Status != "unhealthy" {
		t.Fatalf("expected unhealthy for missing config, got %q", res.Status)
	}
}

func TestDirectoryHealthCheck(t *testing.T) {
	dir := t.TempDir()
	if res := DirectoryHealthCheck("images", dir)(); res.Status != "healthy" {
		t.Fatalf("expected healthy for existing dir, got %q", res.Status)
	}
	if res := DirectoryHealthCheck("images", filepath.Join(dir, "missing"))(); res.Status != "degraded" {
		t.Fatalf("expected degraded for missing dir, got %q", res.Status)
	}
	if res := DirectoryHealthCheck("images", "")(); res.Status != "degraded" {
		t.Fatalf("expected degraded for unset dir, got %q", res.Status)
	}
}
