package monitoring

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckResult is the outcome of a single health check.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthStatus is the aggregate served on /health.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Timestamp int64                  `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// HealthCheck is a function that performs a health check.
type HealthCheck func() CheckResult

// HealthChecker runs named checks and aggregates them. The worst individual
// status becomes the overall status.
type HealthChecker struct {
	service string
	version string
	checks  map[string]HealthCheck
}

// NewHealthChecker creates a health checker for a service.
func NewHealthChecker(service, version string) *HealthChecker {
	return &HealthChecker{
		service: service,
		version: version,
		checks:  make(map[string]HealthCheck),
	}
}

// AddCheck registers a named health check.
func (hc *HealthChecker) AddCheck(name string, check HealthCheck) {
	hc.checks[name] = check
}

// CheckHealth runs every registered check and returns the aggregate.
func (hc *HealthChecker) CheckHealth() HealthStatus {
	status := HealthStatus{
		Service:   hc.service,
		Version:   hc.version,
		Timestamp: time.Now().Unix(),
		Checks:    make(map[string]CheckResult),
	}

	worst := 0
	for name, check := range hc.checks {
		result := check()
		status.Checks[name] = result
		if rank := statusRank(result.Status); rank > worst {
			worst = rank
		}
	}

	switch worst {
	case 0:
		status.Status = StatusHealthy
	case 1:
		status.Status = StatusDegraded
	default:
		status.Status = StatusUnhealthy
	}

	return status
}

// Unknown statuses rank as unhealthy.
func statusRank(status string) int {
	switch status {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Handler serves the health endpoint. Unhealthy answers 503, healthy and
// degraded answer 200.
func (hc *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := hc.CheckHealth()
		statusCode := http.StatusOK
		if health.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}

// HTTPServiceHealthCheck probes an HTTP dependency. Any response below 400
// counts as reachable.
func HTTPServiceHealthCheck(serviceName, url string) HealthCheck {
	client := &http.Client{Timeout: 5 * time.Second}
	return func() CheckResult {
		start := time.Now()
		resp, err := client.Get(url)
		latency := time.Since(start).String()

		if err != nil {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: fmt.Sprintf("%s unreachable: %v", serviceName, err),
				Latency: latency,
			}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: fmt.Sprintf("%s returned %d", serviceName, resp.StatusCode),
				Latency: latency,
			}
		}

		return CheckResult{
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%s responding", serviceName),
			Latency: latency,
		}
	}
}

// ConfigurationHealthCheck verifies that required configuration values are
// non-empty.
func ConfigurationHealthCheck(configs map[string]string) HealthCheck {
	return func() CheckResult {
		start := time.Now()

		var missing []string
		for key, value := range configs {
			if value == "" {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)

		if len(missing) > 0 {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: fmt.Sprintf("Missing required configuration: %v", missing),
				Latency: time.Since(start).String(),
			}
		}

		return CheckResult{
			Status:  StatusHealthy,
			Message: "All required configuration present",
			Latency: time.Since(start).String(),
		}
	}
}

// DirectoryHealthCheck watches an optional asset directory. A missing
// directory reports degraded, not unhealthy.
func DirectoryHealthCheck(name, path string) HealthCheck {
	return func() CheckResult {
		start := time.Now()

		if path == "" {
			return CheckResult{
				Status:  StatusDegraded,
				Message: fmt.Sprintf("%s directory not configured", name),
				Latency: time.Since(start).String(),
			}
		}

		info, err := os.Stat(path)
		if err != nil {
			return CheckResult{
				Status:  StatusDegraded,
				Message: fmt.Sprintf("%s directory unavailable: %v", name, err),
				Latency: time.Since(start).String(),
			}
		}
		if !info.IsDir() {
			return CheckResult{
				Status:  StatusDegraded,
				Message: fmt.Sprintf("%s path is not a directory", name),
				Latency: time.Since(start).String(),
			}
		}

		return CheckResult{
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%s directory present", name),
			Latency: time.Since(start).String(),
		}
	}
}
