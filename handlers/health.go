package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessProbe reports whether one dependency is currently usable.
type ReadinessProbe func(ctx context.Context) error

// Readiness builds the /ready handler. Every probe runs on each request with
// a bounded context, so a dependency that dies after startup flips the
// endpoint to 503 instead of reporting a stale boot-time snapshot.
func Readiness(timeout time.Duration, start time.Time, probes map[string]ReadinessProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := true
		deps := make(map[string]bool, len(probes))
		for name, probe := range probes {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
			deps[name] = probe(ctx) == nil
			cancel()
			if !deps[name] {
				ready = false
			}
		}

		status := http.StatusOK
		body := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(start).String()}
		if !ready {
			status = http.StatusServiceUnavailable
			body["status"] = "not_ready"
		}
		c.JSON(status, body)
	}
}
