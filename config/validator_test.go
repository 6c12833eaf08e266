package config

import (
	"strings"
	"testing"
	"time"

	"dogechat/internal/errors"
)

// TestValidate_ErrorMessages verifies that Validate returns actionable
// error messages with hints.
func TestValidate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantSub string // substring expected in error
	}{
		{
			name:    "missing username has hint",
			cfg:     Config{Host: "x", Port: 80, Transport: TransportTCP},
			wantSub: "hint: use -u <name>",
		},
		{
			name:    "colon username explains why",
			cfg:     Config{Host: "x", Port: 80, Username: "a:b", Transport: TransportTCP},
			wantSub: "misattribute",
		},
		{
			name:    "unknown transport",
			cfg:     Config{Host: "x", Port: 80, Username: "a", Transport: "quic"},
			wantSub: "--transport=quic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestValidate_ReturnsConfigError(t *testing.T) {
	cfg := Config{Host: "x", Port: 99999, Username: "a", Transport: TransportTCP}
	err := cfg.Validate()

	var ce *errors.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %T, want *ConfigError", err)
	}
	if ce.Field != "port" || ce.Value != 99999 {
		t.Errorf("got field %q value %v", ce.Field, ce.Value)
	}
}

// TestValidate_NegativeTimeouts verifies that both timeouts are reported
// as *ConfigError naming the offending flag.
func TestValidate_NegativeTimeouts(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"connect timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"write timeout", func(c *Config) { c.WriteTimeout = -time.Second }, "write-timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: "x", Port: 80, Username: "a", Transport: TransportTCP}
			tt.mutate(&cfg)

			var ce *errors.ConfigError
			if err := cfg.Validate(); !errors.As(err, &ce) {
				t.Fatalf("err = %T (%v), want *ConfigError", err, err)
			}
			if ce.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ce.Field, tt.wantField)
			}
			if ce.Hint == "" {
				t.Error("expected a hint")
			}
		})
	}
}
