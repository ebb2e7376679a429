/*
Package tracing follows tool calls through structured logs.

Every HTTP request and every MCP tool call gets a span. Finished spans go to
a buffered collector that logs them through zap, so one tool call can be
followed across the registry, the AppleScript bridge and image downloads by
its trace ID.

A span ends in one of three states: ok, failure (the tool ran but returned
Success=false) or error (a Go error came back). Spans slower than the
configured threshold are logged at info level and counted in Stats.

	tracer := tracing.New("office-mcp", logger, tracing.WithSlowThreshold(15*time.Second))
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	result, err := tracing.TraceTool(ctx, tracer, "powerpoint.add_slide", "mcp",
		func(ctx context.Context) (*types.Result, error) {
			return registry.Execute(ctx, "powerpoint.add_slide", params, appCtx)
		})

Propagation uses the X-Trace-ID and X-Span-ID headers.
*/
package tracing
