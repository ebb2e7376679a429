package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware records requests per route template so unknown paths collapse
// into "unmatched". Requests to any path in skip, usually the scrape
// endpoint, are not recorded.
func Middleware(m *Metrics, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		m.InFlight.Inc()
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		m.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			elapsed,
			max(c.Request.ContentLength, 0),
			int64(max(c.Writer.Size(), 0)),
		)
	}
}

// Handler exposes metrics from gatherer in Prometheus text format
func Handler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// ResourceName turns office365://status into the label "status"
func ResourceName(uri string) string {
	if _, rest, ok := strings.Cut(uri, "://"); ok {
		return rest
	}
	return uri
}

// ObserveResourceRead records the outcome of reading uri. Callers pass only
// URIs they serve so the label set stays bounded. A nil m is a no-op.
func ObserveResourceRead(m *Metrics, uri string, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.RecordResourceRead(ResourceName(uri), status)
}
