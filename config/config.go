// Package config defines the runtime configuration for chatrelay and
// provides helpers for parsing the listen port.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds every tuneable for a single relay instance.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Port int // TCP listen port

	// ── Session lifecycle ────────────────────────────────────────────
	IdleTimeout   time.Duration // evict authenticated sessions idle longer than this
	SweepInterval time.Duration // how often the reaper scans
	ShutdownGrace time.Duration // how long Shutdown waits for handlers

	// ── Protocol limits ──────────────────────────────────────────────
	MaxLineLen  int // cap on a single buffered line, bytes
	OutboxDepth int // per-session outbound queue length

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Port:          DefaultPort,
		IdleTimeout:   DefaultIdleTimeout,
		SweepInterval: DefaultSweepInterval,
		ShutdownGrace: DefaultShutdownGrace,
		MaxLineLen:    DefaultMaxLineLen,
		OutboxDepth:   DefaultOutboxDepth,
	}
}

// ParsePort parses a decimal port and range-checks it.  Port 0 is
// accepted and means "any free port" (useful for tests).
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 0-65535", port)
	}
	return port, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 0-65535", c.Port)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %s", c.IdleTimeout)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval)
	}
	if c.MaxLineLen != 0 && c.MaxLineLen < MinLineLen {
		return fmt.Errorf("max line length %d below minimum %d", c.MaxLineLen, MinLineLen)
	}
	if c.OutboxDepth < 1 {
		return fmt.Errorf("outbox depth must be at least 1, got %d", c.OutboxDepth)
	}
	return nil
}
