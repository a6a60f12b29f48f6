package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
	if cfg.IdleTimeout != 300*time.Second {
		t.Errorf("IdleTimeout = %s, want 300s", cfg.IdleTimeout)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %s, want 30s", cfg.SweepInterval)
	}
	if cfg.MaxLineLen != 8192 {
		t.Errorf("MaxLineLen = %d, want 8192", cfg.MaxLineLen)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		spec    string
		want    int
		wantErr bool
	}{
		{"4000", 4000, false},
		{"0", 0, false},
		{"65535", 65535, false},
		{"65536", 0, true},
		{"-1", 0, true},
		{"http", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePort(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePort(%q) err = %v, wantErr %v", tt.spec, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParsePort(%q) = %d, want %d", tt.spec, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero ok", func(c *Config) { c.Port = 0 }, false},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"zero idle timeout", func(c *Config) { c.IdleTimeout = 0 }, true},
		{"zero sweep", func(c *Config) { c.SweepInterval = 0 }, true},
		{"line cap below minimum", func(c *Config) { c.MaxLineLen = 10 }, true},
		{"line cap unbounded", func(c *Config) { c.MaxLineLen = 0 }, false},
		{"zero outbox", func(c *Config) { c.OutboxDepth = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
