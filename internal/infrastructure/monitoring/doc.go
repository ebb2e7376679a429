/*
Package monitoring exports Prometheus metrics for the office server.

Every series is prefixed office_. HTTP requests are labelled by route
template, tool calls by service, tool and outcome, and open session objects
by kind (presentation, document, workbook). AppleScript calls, image
downloads and office365:// resource reads have their own counters. Snapshot
returns the same totals as JSON for /health.

	metrics := monitoring.NewMetricsWith(registry)
	router.Use(monitoring.Middleware(metrics, "/metrics"))
	router.GET("/metrics", monitoring.Handler(registry))

	metrics.RecordToolExecution("powerpoint", "add_slide", monitoring.StatusSuccess, elapsed)
	metrics.SetActiveObjects("presentation", 3)

Build each server with its own prometheus.NewRegistry() so repeated
construction in tests does not collide.
*/
package monitoring
