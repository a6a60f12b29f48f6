// Package metrics provides lightweight, lock-free counters for
// tracking runtime statistics of a relay instance.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a relay instance.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	connectionsActive atomic.Int64
	connectionsTotal  atomic.Int64
	linesReceived     atomic.Int64
	broadcasts        atomic.Int64
	directMessages    atomic.Int64
	sessionsReaped    atomic.Int64
	errorsTotal       atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection metrics ───────────────────────────────────────────────

// ConnectionOpened increments both the active and total counters.
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(1)
	c.connectionsTotal.Add(1)
}

// ConnectionClosed decrements the active connection counter.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(-1)
}

// ActiveConnections returns the current number of open connections.
func (c *Collector) ActiveConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsActive.Load()
}

// TotalConnections returns the lifetime connection count.
func (c *Collector) TotalConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsTotal.Load()
}

// ── Traffic metrics ──────────────────────────────────────────────────

// LineReceived records one complete inbound protocol line.
func (c *Collector) LineReceived() {
	if c == nil {
		return
	}
	c.linesReceived.Add(1)
}

// MessageBroadcast records one MSG fan-out.
func (c *Collector) MessageBroadcast() {
	if c == nil {
		return
	}
	c.broadcasts.Add(1)
}

// DirectMessage records one delivered DM.
func (c *Collector) DirectMessage() {
	if c == nil {
		return
	}
	c.directMessages.Add(1)
}

// SessionReaped records one idle eviction.
func (c *Collector) SessionReaped() {
	if c == nil {
		return
	}
	c.sessionsReaped.Add(1)
}

// LinesReceived returns the lifetime inbound line count.
func (c *Collector) LinesReceived() int64 {
	if c == nil {
		return 0
	}
	return c.linesReceived.Load()
}

// Broadcasts returns the lifetime MSG fan-out count.
func (c *Collector) Broadcasts() int64 {
	if c == nil {
		return 0
	}
	return c.broadcasts.Load()
}

// DirectMessages returns the lifetime delivered DM count.
func (c *Collector) DirectMessages() int64 {
	if c == nil {
		return 0
	}
	return c.directMessages.Load()
}

// SessionsReaped returns the lifetime idle eviction count.
func (c *Collector) SessionsReaped() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsReaped.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	ConnectionsActive int64  `json:"connections_active"`
	ConnectionsTotal  int64  `json:"connections_total"`
	LinesReceived     int64  `json:"lines_received"`
	Broadcasts        int64  `json:"broadcasts"`
	DirectMessages    int64  `json:"direct_messages"`
	SessionsReaped    int64  `json:"sessions_reaped"`
	ErrorsTotal       int64  `json:"errors_total"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Second).String(),
		ConnectionsActive: c.connectionsActive.Load(),
		ConnectionsTotal:  c.connectionsTotal.Load(),
		LinesReceived:     c.linesReceived.Load(),
		Broadcasts:        c.broadcasts.Load(),
		DirectMessages:    c.directMessages.Load(),
		SessionsReaped:    c.sessionsReaped.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON renders the snapshot as indented JSON for logging.
func (c *Collector) JSON() string {
	b, err := json.MarshalIndent(c.Snapshot(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
