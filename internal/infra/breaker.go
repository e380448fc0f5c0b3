// Package infra provides shared transport infrastructure for the Linear
// gateway client. The orchestration layer itself performs no retries and no
// caching; the circuit breaker here only protects the process from hammering
// an upstream that is already failing.
package infra

import (
	"sync"
	"time"
)

// BreakerState represents the current state of the circuit breaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal operation
	BreakerOpen                         // failing fast, rejecting requests
	BreakerHalfOpen                     // probing whether the gateway recovered
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker fails fast once the Linear API has produced a run of consecutive
// transport failures, and probes recovery after a cooldown.
type Breaker struct {
	mu sync.RWMutex

	failureThreshold int
	cooldown         time.Duration
	halfOpenMax      int

	state            BreakerState
	consecutiveFails int
	lastFailure      time.Time
	halfOpenProbes   int
}

// NewBreaker creates a circuit breaker with defaults suitable for the
// Linear API: open after 5 consecutive failures, probe again after 30s.
func NewBreaker() *Breaker {
	return NewBreakerWithConfig(5, 30*time.Second, 2)
}

// NewBreakerWithConfig creates a circuit breaker with custom thresholds.
func NewBreakerWithConfig(failureThreshold int, cooldown time.Duration, halfOpenMax int) *Breaker {
	return &Breaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		halfOpenMax:      halfOpenMax,
		state:            BreakerClosed,
	}
}

// Allow reports whether a request may proceed. An open circuit transitions to
// half-open once the cooldown has elapsed; half-open admits a bounded number
// of probes.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if time.Since(b.lastFailure) > b.cooldown {
			b.state = BreakerHalfOpen
			b.halfOpenProbes = 0
			return true
		}
		return false
	case BreakerHalfOpen:
		if b.halfOpenProbes < b.halfOpenMax {
			b.halfOpenProbes++
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess resets the failure count; a success while half-open closes
// the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFails = 0
	if b.state == BreakerHalfOpen {
		b.state = BreakerClosed
		b.halfOpenProbes = 0
	}
}

// RecordFailure counts a transport failure; crossing the threshold opens the
// circuit, and any failure while half-open reopens it.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFails++
	b.lastFailure = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.consecutiveFails >= b.failureThreshold {
			b.state = BreakerOpen
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.halfOpenProbes = 0
	}
}

// State returns the current breaker state.
func (b *Breaker) State() BreakerState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Stats returns a snapshot of the breaker for diagnostics.
func (b *Breaker) Stats() BreakerStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BreakerStats{
		State:            b.state.String(),
		ConsecutiveFails: b.consecutiveFails,
		LastFailure:      b.lastFailure,
	}
}

// BreakerStats is a point-in-time snapshot of breaker state.
type BreakerStats struct {
	State            string    `json:"state"`
	ConsecutiveFails int       `json:"consecutive_failures"`
	LastFailure      time.Time `json:"last_failure,omitempty"`
}

// ErrBreakerOpen is returned when the circuit is open and a request was
// rejected without touching the gateway.
type ErrBreakerOpen struct {
	RetryAt  time.Time
	Failures int
}

func (e ErrBreakerOpen) Error() string {
	return "linear API circuit open: upstream is failing, retry after " + e.RetryAt.Format(time.RFC3339)
}
