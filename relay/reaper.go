package relay

import (
	"context"
	"time"
)

// reapLoop periodically evicts authenticated sessions that have been
// silent longer than the idle timeout.  Unauthenticated sessions are
// never reaped; only the transport closing tears those down.
func (r *Relay) reapLoop(ctx context.Context) {
	ticker := time.NewTicker(r.Config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			r.sweep(now)
		case <-ctx.Done():
			return
		}
	}
}

// sweep runs one reaper pass over a snapshot of authenticated
// sessions.  The notice the victim receives does not count as
// activity.
func (r *Relay) sweep(now time.Time) {
	for _, s := range r.Registry.AllAuthenticated() {
		idle := now.Sub(s.LastActivity())
		if idle <= r.Config.IdleTimeout {
			continue
		}

		name, _ := s.Username()
		r.Logger.Info("user %q idle for %s, disconnecting", name, idle.Truncate(time.Second))

		s.Send("INFO idle-timeout")
		r.disconnect(s, "disconnected (idle)")
		r.Metrics.SessionReaped()
	}
}
