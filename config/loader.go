package config

// loader.go - configuration loading from environment variables.
//
// Precedence for the CHAT_* knobs (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)
//
// The port is the exception: PORT outranks the -p flag and the
// positional argument (environment, then argument, then DefaultPort),
// so cmd/root.go re-applies EnvPort after flag parsing.

import (
	"os"
	"strconv"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// The port is read from the bare PORT variable; every other setting
// uses the CHAT_ prefix.

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v, ok := EnvPort(); ok {
		cfg.Port = v
	}
	if v := envInt("CHAT_IDLE_TIMEOUT"); v > 0 {
		cfg.IdleTimeout = secondsDuration(v)
	}
	if v := envInt("CHAT_SWEEP_INTERVAL"); v > 0 {
		cfg.SweepInterval = secondsDuration(v)
	}
	if v := envInt("CHAT_MAX_LINE"); v > 0 {
		cfg.MaxLineLen = v
	}
	if v := envInt("CHAT_OUTBOX_DEPTH"); v > 0 {
		cfg.OutboxDepth = v
	}
	if v := envInt("CHAT_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// EnvPort reports the port selected by the PORT variable.  Unset,
// non-numeric, and non-positive values all count as "not selected".
func EnvPort() (int, bool) {
	if v := envInt("PORT"); v > 0 {
		return v, true
	}
	return 0, false
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
