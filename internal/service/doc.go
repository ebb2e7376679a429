// Package service routes tool calls to the office providers.
//
// The powerpoint, word, excel and office providers each register one
// service whose tools are addressed as "<service>.<tool>". The registry
// indexes those tools at registration, rejects calls to tools a service does
// not declare, and reports every execution to an optional Observer. Discover
// ranks services against a free-text intent for the HTTP discovery endpoint.
//
//	registry := service.NewRegistry(service.WithObserver(metrics))
//	if err := registry.Register(powerpointProvider); err != nil { ... }
//	services := registry.Discover("add a slide with an image", 5)
//	result, err := registry.Execute(ctx, "powerpoint.add_slide", params, appCtx)
package service
