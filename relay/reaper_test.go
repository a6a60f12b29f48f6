package relay

import (
	"testing"
	"time"
)

func TestSweep_EvictsIdleAuthenticated(t *testing.T) {
	r := testRelay()
	r.Config.IdleTimeout = 50 * time.Millisecond

	alice := newTestClient(t, r)
	bob := newTestClient(t, r)
	login(t, r, alice, "alice")
	login(t, r, bob, "bob")

	time.Sleep(60 * time.Millisecond)
	r.Registry.Touch(bob.s) // bob stays fresh

	r.sweep(time.Now())

	if got := alice.readLine(t); got != "INFO idle-timeout" {
		t.Errorf("victim: got %q, want INFO idle-timeout", got)
	}
	if got := bob.readLine(t); got != "INFO alice disconnected (idle)" {
		t.Errorf("survivor: got %q, want INFO alice disconnected (idle)", got)
	}

	if r.Registry.Len() != 1 {
		t.Errorf("registry size = %d, want 1", r.Registry.Len())
	}
	if got := r.Metrics.SessionsReaped(); got != 1 {
		t.Errorf("reaped = %d, want 1", got)
	}
}

func TestSweep_SparesUnauthenticated(t *testing.T) {
	r := testRelay()
	r.Config.IdleTimeout = time.Nanosecond

	lurker := newTestClient(t, r)
	_ = lurker

	// Even with the clock far in the future, an unauthenticated
	// session is not the reaper's to take.
	r.sweep(time.Now().Add(24 * time.Hour))

	if r.Registry.Len() != 1 {
		t.Errorf("registry size = %d, want 1", r.Registry.Len())
	}
}

func TestSweep_FreshSessionsUntouched(t *testing.T) {
	r := testRelay()

	alice := newTestClient(t, r)
	login(t, r, alice, "alice")

	r.sweep(time.Now())

	if r.Registry.Len() != 1 {
		t.Errorf("registry size = %d, want 1", r.Registry.Len())
	}
	alice.expectSilence(t)
}
