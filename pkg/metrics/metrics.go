package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "siptrack", Name: "http_requests_total", Help: "Number of HTTP requests by path, method and status."},
		[]string{"path", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "siptrack", Name: "http_request_duration_seconds", Help: "HTTP request latency by path.", Buckets: prometheus.DefBuckets},
		[]string{"path"},
	)
	PlansCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "siptrack", Name: "plans_created_total", Help: "Number of SIP plans created."},
	)
	ProfilesProvisioned = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "siptrack", Name: "profiles_provisioned_total", Help: "Number of profiles lazily created on first authenticated access."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "siptrack", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "siptrack", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(PlansCreated)
	reg.MustRegister(ProfilesProvisioned)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

// GinMiddleware records request counts and latency. Uses the route template
// (FullPath) rather than the raw URL to keep label cardinality bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
