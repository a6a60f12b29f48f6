// Package relay implements the chat relay core: the TCP accept loop,
// the per-connection read loop, the command router, and the idle
// reaper.  Everything routes through one session.Registry, so the
// uniqueness and teardown invariants hold no matter which path
// (client command, read error, reaper, shutdown) fires first.
package relay

import (
	"chatrelay/config"
	"chatrelay/internal/metrics"
	"chatrelay/internal/session"
	"chatrelay/util"
)

// Relay orchestrates a single chat relay instance.
type Relay struct {
	Config   *config.Config
	Logger   *util.Logger
	Registry *session.Registry
	Metrics  *metrics.Collector
}

// New returns a ready-to-run Relay.
func New(cfg *config.Config, logger *util.Logger) *Relay {
	return &Relay{
		Config:   cfg,
		Logger:   logger,
		Registry: session.NewRegistry(cfg.OutboxDepth),
		Metrics:  metrics.New(),
	}
}
