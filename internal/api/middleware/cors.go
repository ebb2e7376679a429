package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/tracing"
)

var loopbackHosts = []string{"localhost", "127.0.0.1", "::1"}

// CORS lets browser clients call the API. With no origins only pages served
// from this machine are allowed, since tools read and write local files.
// A single "*" allows every origin.
func CORS(origins ...string) gin.HandlerFunc {
	trace := []string{tracing.HeaderTraceID, tracing.HeaderSpanID}
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  append([]string{"Content-Type", "Content-Length", "Accept", "Origin"}, trace...),
		ExposeHeaders: append([]string{"X-Request-ID"}, trace...),
		MaxAge:        12 * time.Hour,
	}

	switch {
	case len(origins) == 0:
		cfg.AllowOriginFunc = IsLoopbackOrigin
	case slices.Contains(origins, "*"):
		cfg.AllowAllOrigins = true
	default:
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// IsLoopbackOrigin reports whether origin points at this machine.
func IsLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return slices.Contains(loopbackHosts, u.Hostname())
}
