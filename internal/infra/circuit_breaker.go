package infra

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ── Renderer breaker ──────────────────────────────────────────────────────────
// Guards the headless-browser PDF renderer. Trip consecutive render failures
// open it; while open, Do returns ErrCircuitOpen without rendering. After
// Cooldown it lets renders through again and closes after Recover of them
// succeed. A render the caller abandoned says nothing about Chrome and is
// not counted either way.

// CBState is the breaker position reported by /health and the documents
// health endpoint.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

var stateNames = map[CBState]string{
	CBClosed:   "closed",
	CBOpen:     "open",
	CBHalfOpen: "half-open",
}

func (s CBState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrCircuitOpen is returned by Do while the renderer is considered down.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type BreakerConfig struct {
	Trip     int           // consecutive failures that open the breaker
	Recover  int           // half-open successes needed to close it
	Cooldown time.Duration // how long it stays open
}

// DefaultCBConfig trips quickly: a missing Chrome binary fails every render.
func DefaultCBConfig() BreakerConfig {
	return BreakerConfig{Trip: 3, Recover: 1, Cooldown: 30 * time.Second}
}

type CircuitBreaker struct {
	cfg BreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     CBState
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker starts closed. Zero fields take DefaultCBConfig values.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.Trip <= 0 {
		cfg.Trip = def.Trip
	}
	if cfg.Recover <= 0 {
		cfg.Recover = def.Recover
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current()
}

// current promotes an expired open breaker to half-open. cb.mu must be held.
func (cb *CircuitBreaker) current() CBState {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.Cooldown {
		cb.state = CBHalfOpen
		cb.successes = 0
	}
	return cb.state
}

// Do runs fn with ctx unless the breaker is open. fn's error is returned
// unchanged.
func (cb *CircuitBreaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch {
	case err == nil:
		cb.succeeded()
	case abandoned(ctx, err):
		// caller went away; Chrome's health is unknown
	default:
		cb.failed()
	}
	return err
}

// abandoned reports whether err comes from the caller cancelling ctx.
// Deadline expiry still counts: a renderer that hangs is a failing renderer.
func abandoned(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) && errors.Is(ctx.Err(), context.Canceled)
}

func (cb *CircuitBreaker) failed() {
	cb.failures++
	switch cb.current() {
	case CBHalfOpen:
		cb.open()
	case CBClosed:
		if cb.failures >= cb.cfg.Trip {
			cb.open()
		}
	}
}

func (cb *CircuitBreaker) succeeded() {
	switch cb.current() {
	case CBClosed:
		cb.failures = 0
	case CBHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.Recover {
			cb.state = CBClosed
			cb.failures, cb.successes = 0, 0
			log.Info().Msg("pdf renderer breaker closed")
		}
	}
}

func (cb *CircuitBreaker) open() {
	log.Warn().Int("failures", cb.failures).Dur("cooldown", cb.cfg.Cooldown).Msg("pdf renderer breaker opened")
	cb.state = CBOpen
	cb.openedAt = cb.now()
	cb.failures, cb.successes = 0, 0
}
