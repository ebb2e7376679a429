package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCircuitOpen matches every OpenError
var ErrCircuitOpen = errors.New("circuit open")

// OpenError is returned while a breaker rejects calls
type OpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: circuit open, retry in %s", e.Name, e.RetryAfter.Round(time.Second))
}

// Is reports ErrCircuitOpen
func (e *OpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

// State of a breaker
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	}
	return "unknown"
}

// Policy decides when a breaker opens and how it recovers
type Policy struct {
	// Threshold is the number of consecutive failures that opens the circuit
	Threshold int
	// Cooldown is how long the circuit stays open before one probe is let through
	Cooldown time.Duration
	// Probes is the number of successful probes needed to close again
	Probes int
	// Window forgets a failure streak whose last failure is older than this
	Window time.Duration
	// IsFailure defaults to any error except context cancellation
	IsFailure     func(err error) bool
	OnStateChange func(name string, from, to State)
}

// AppleScriptPolicy opens after three consecutive osascript failures and
// probes again after thirty seconds, so an app stuck on a modal dialog stops
// blocking every tool call.
func AppleScriptPolicy(onChange func(name string, from, to State)) Policy {
	return Policy{
		Threshold:     3,
		Cooldown:      30 * time.Second,
		Probes:        1,
		Window:        2 * time.Minute,
		OnStateChange: onChange,
	}
}

// DownloadPolicy guards remote image hosts
func DownloadPolicy(onChange func(name string, from, to State)) Policy {
	return Policy{
		Threshold:     5,
		Cooldown:      20 * time.Second,
		Probes:        2,
		Window:        time.Minute,
		OnStateChange: onChange,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Threshold <= 0 {
		p.Threshold = 5
	}
	if p.Cooldown <= 0 {
		p.Cooldown = time.Minute
	}
	if p.Probes <= 0 {
		p.Probes = 1
	}
	if p.IsFailure == nil {
		p.IsFailure = func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		}
	}
	return p
}

// Snapshot is a point-in-time view of a breaker
type Snapshot struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Failures  int    `json:"consecutive_failures"`
	Successes uint64 `json:"successes"`
	Errors    uint64 `json:"errors"`
	Rejected  uint64 `json:"rejected"`
}

// Breaker stops calling a dependency that keeps failing
type Breaker struct {
	name   string
	policy Policy
	now    func() time.Time

	mu          sync.Mutex
	state       State
	streak      int
	lastFailure time.Time
	openedAt    time.Time
	probing     int // probes in flight
	probeWins   int
	successes   uint64
	errors      uint64
	rejected    uint64
}

// New creates a closed breaker
func New(name string, policy Policy) *Breaker {
	return &Breaker{name: name, policy: policy.withDefaults(), now: time.Now}
}

// Name returns the breaker name
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, moving an expired open circuit to half-open
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(b.now())
	return b.state
}

// Snapshot returns the breaker's counters
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(b.now())
	return Snapshot{
		Name:      b.name,
		State:     b.state.String(),
		Failures:  b.streak,
		Successes: b.successes,
		Errors:    b.errors,
		Rejected:  b.rejected,
	}
}

// Call runs fn unless the circuit is open. A context that is already done
// returns its error without counting.
func (b *Breaker) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe, err := b.admit()
	if err != nil {
		return err
	}

	finished := false
	defer func() {
		if !finished {
			b.record(probe, false)
		}
	}()

	err = fn(ctx)
	finished = true
	b.record(probe, !b.policy.IsFailure(err))
	return err
}

// Do runs fn through b and returns its result
func Do[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := b.Call(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

func (b *Breaker) admit() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.advance(now)

	switch b.state {
	case StateOpen:
		b.rejected++
		return false, &OpenError{Name: b.name, RetryAfter: b.openedAt.Add(b.policy.Cooldown).Sub(now)}
	case StateHalfOpen:
		if b.probing+b.probeWins >= b.policy.Probes {
			b.rejected++
			return false, &OpenError{Name: b.name}
		}
		b.probing++
		return true, nil
	}
	return false, nil
}

func (b *Breaker) record(probe, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if probe {
		b.probing--
	}

	if ok {
		b.successes++
		b.streak = 0
		if probe && b.state == StateHalfOpen {
			b.probeWins++
			if b.probeWins >= b.policy.Probes {
				b.transition(StateClosed, now)
			}
		}
		return
	}

	b.errors++
	switch b.state {
	case StateHalfOpen:
		if probe {
			b.transition(StateOpen, now)
		}
	case StateClosed:
		if b.policy.Window > 0 && !b.lastFailure.IsZero() && now.Sub(b.lastFailure) > b.policy.Window {
			b.streak = 0
		}
		b.streak++
		b.lastFailure = now
		if b.streak >= b.policy.Threshold {
			b.transition(StateOpen, now)
		}
	}
}

func (b *Breaker) advance(now time.Time) {
	if b.state == StateOpen && !now.Before(b.openedAt.Add(b.policy.Cooldown)) {
		b.transition(StateHalfOpen, now)
	}
}

func (b *Breaker) transition(to State, now time.Time) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.probeWins = 0

	switch to {
	case StateOpen:
		b.openedAt = now
	case StateClosed:
		b.streak = 0
		b.lastFailure = time.Time{}
	}

	if b.policy.OnStateChange != nil {
		b.policy.OnStateChange(b.name, from, to)
	}
}
