package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the listen port when neither the PORT variable
	// nor a flag/argument selects one.
	DefaultPort = 4000

	// DefaultIdleTimeout is how long an authenticated session may stay
	// silent before the reaper evicts it.
	DefaultIdleTimeout = 300 * time.Second

	// DefaultSweepInterval is how often the idle reaper scans.
	DefaultSweepInterval = 30 * time.Second

	// DefaultShutdownGrace is how long graceful shutdown waits for
	// per-connection handlers to finish.
	DefaultShutdownGrace = 5 * time.Second

	// DefaultMaxLineLen caps a single buffered protocol line.  A peer
	// that streams more than this without a newline is disconnected.
	DefaultMaxLineLen = 8192

	// MinLineLen is the smallest permitted line cap; anything lower
	// cannot carry a useful command.
	MinLineLen = 64

	// DefaultOutboxDepth is the per-session outbound queue length.
	// Lines beyond this are dropped rather than stalling the router.
	DefaultOutboxDepth = 32
)
