/*
Package resilience keeps a failing dependency from stalling tool calls.

Two things can hang or fail over and over: osascript talking to an Office
app, and remote hosts serving slide images. The AppleScript bridge holds a
Set keyed by application name, so a PowerPoint stuck on a modal dialog
opens only its own circuit. Image downloads share one Breaker.

	breakers := resilience.NewSet("applescript", resilience.AppleScriptPolicy(onChange))

	out, err := resilience.Do(ctx, breakers.Get("Microsoft Word"), func(ctx context.Context) (string, error) {
		return runner.Run(ctx, script)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		// the *OpenError carries RetryAfter
	}

A breaker opens after Policy.Threshold consecutive failures, waits out
Policy.Cooldown, then lets Policy.Probes calls through. A failed probe opens
it again. Cancelled contexts never count as failures.
*/
package resilience
