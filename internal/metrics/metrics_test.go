package metrics

import (
	"encoding/json"
	"testing"
)

func TestCollector_Connections(t *testing.T) {
	c := New()

	c.ConnectionOpened()
	c.ConnectionOpened()
	if c.ActiveConnections() != 2 {
		t.Errorf("active = %d, want 2", c.ActiveConnections())
	}
	if c.TotalConnections() != 2 {
		t.Errorf("total = %d, want 2", c.TotalConnections())
	}

	c.ConnectionClosed()
	if c.ActiveConnections() != 1 {
		t.Errorf("active = %d, want 1", c.ActiveConnections())
	}
	if c.TotalConnections() != 2 {
		t.Errorf("total should remain 2, got %d", c.TotalConnections())
	}
}

func TestCollector_Traffic(t *testing.T) {
	c := New()

	c.LineReceived()
	c.LineReceived()
	c.MessageBroadcast()
	c.DirectMessage()
	c.SessionReaped()

	if c.LinesReceived() != 2 {
		t.Errorf("lines = %d, want 2", c.LinesReceived())
	}
	if c.Broadcasts() != 1 {
		t.Errorf("broadcasts = %d, want 1", c.Broadcasts())
	}
	if c.DirectMessages() != 1 {
		t.Errorf("dms = %d, want 1", c.DirectMessages())
	}
	if c.SessionsReaped() != 1 {
		t.Errorf("reaped = %d, want 1", c.SessionsReaped())
	}
}

func TestCollector_Errors(t *testing.T) {
	c := New()

	c.RecordError("first error")
	c.RecordError("second error")

	if c.ErrorCount() != 2 {
		t.Errorf("errors = %d, want 2", c.ErrorCount())
	}

	s := c.Snapshot()
	if s.LastErrorMessage != "second error" {
		t.Errorf("last error = %q", s.LastErrorMessage)
	}
	if s.LastError == "" {
		t.Error("last error time should be set")
	}
}

func TestCollector_SnapshotJSON(t *testing.T) {
	c := New()
	c.ConnectionOpened()
	c.MessageBroadcast()

	var s Snapshot
	if err := json.Unmarshal([]byte(c.JSON()), &s); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}
	if s.ConnectionsActive != 1 || s.Broadcasts != 1 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	c.ConnectionOpened()
	c.ConnectionClosed()
	c.LineReceived()
	c.MessageBroadcast()
	c.DirectMessage()
	c.SessionReaped()
	c.RecordError("ignored")

	if c.ActiveConnections() != 0 || c.ErrorCount() != 0 {
		t.Error("nil collector should report zeros")
	}
	if s := c.Snapshot(); s != (Snapshot{}) {
		t.Errorf("nil snapshot = %+v", s)
	}
}
