// Package progress tracks liveness of the currently running remote
// operation. Remote calls expose no native progress signal, so the
// orchestrator feeds coarse heartbeats into the monitor purely to prove
// something is still happening; a stretch of silence becomes a timeout.
package progress

import (
	"fmt"
	"time"
)

// DefaultTimeout is how long an operation may go without a heartbeat before
// it is declared dead.
const DefaultTimeout = 60 * time.Second

// TimeoutError reports that the named operation stopped making progress.
type TimeoutError struct {
	Operation string
	Elapsed   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s without progress", e.Operation, e.Elapsed.Truncate(time.Second))
}

// Monitor tracks at most one named operation at a time. It holds no timer of
// its own; the owner polls Check on a fixed tick.
type Monitor struct {
	timeout    time.Duration
	op         string
	percent    int
	lastUpdate time.Time
	active     bool
}

// New creates a Monitor with the given no-progress timeout. A zero timeout
// means DefaultTimeout.
func New(timeout time.Duration) *Monitor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Monitor{timeout: timeout}
}

// Begin starts tracking the named operation, resetting the deadline clock.
// Any previously tracked operation is replaced.
func (m *Monitor) Begin(name string) {
	m.op = name
	m.percent = 0
	m.lastUpdate = time.Now()
	m.active = true
}

// Heartbeat records a progress update for the active operation and resets
// the deadline clock. Ignored when nothing is tracked.
func (m *Monitor) Heartbeat(percent int) {
	if !m.active {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m.percent = percent
	m.lastUpdate = time.Now()
}

// Cancel stops tracking without raising an error.
func (m *Monitor) Cancel() {
	m.active = false
	m.op = ""
	m.percent = 0
}

// Active reports whether an operation is currently tracked.
func (m *Monitor) Active() bool { return m.active }

// Operation returns the name of the tracked operation, or "" when idle.
func (m *Monitor) Operation() string { return m.op }

// Percent returns the last reported progress for the tracked operation.
func (m *Monitor) Percent() int { return m.percent }

// Check compares now against the last heartbeat. On breach it deactivates
// the monitor and returns a TimeoutError naming the operation; every
// subsequent Check returns nil until Begin is called again, so a timeout
// fires exactly once.
func (m *Monitor) Check(now time.Time) *TimeoutError {
	if !m.active {
		return nil
	}
	elapsed := now.Sub(m.lastUpdate)
	if elapsed < m.timeout {
		return nil
	}
	op := m.op
	m.Cancel()
	return &TimeoutError{Operation: op, Elapsed: elapsed}
}
