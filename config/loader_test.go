package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadFromEnv_Address(t *testing.T) {
	t.Setenv("DOGECHAT_HOST", "chat.example.com")
	t.Setenv("DOGECHAT_PORT", "8080")
	cfg := &Config{}
	LoadFromEnv(cfg)
	if cfg.Host != "chat.example.com" {
		t.Errorf("Host = %q, want %q", cfg.Host, "chat.example.com")
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
}

func TestLoadFromEnv_Username(t *testing.T) {
	t.Setenv("DOGECHAT_USERNAME", "alice")
	cfg := &Config{}
	LoadFromEnv(cfg)
	if cfg.Username != "alice" {
		t.Errorf("Username = %q", cfg.Username)
	}
}

func TestLoadFromEnv_Transport(t *testing.T) {
	t.Setenv("DOGECHAT_TRANSPORT", "WS")
	t.Setenv("DOGECHAT_WS_PATH", "/chat")
	cfg := &Config{}
	LoadFromEnv(cfg)
	if cfg.Transport != TransportWebSocket {
		t.Errorf("Transport = %q, want ws", cfg.Transport)
	}
	if cfg.WSPath != "/chat" {
		t.Errorf("WSPath = %q", cfg.WSPath)
	}
}

func TestLoadFromEnv_NoDNS(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DOGECHAT_NO_DNS", v)
			cfg := &Config{}
			LoadFromEnv(cfg)
			if !cfg.NoDNS {
				t.Error("NoDNS should be true")
			}
		})
	}
}

func TestLoadFromEnv_Timeouts(t *testing.T) {
	t.Setenv("DOGECHAT_TIMEOUT", "10")
	t.Setenv("DOGECHAT_WRITE_TIMEOUT", "2")
	cfg := &Config{}
	LoadFromEnv(cfg)
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.WriteTimeout != 2*time.Second {
		t.Errorf("WriteTimeout = %v, want 2s", cfg.WriteTimeout)
	}
}

func TestLoadFromEnv_NoOverrideWhenEmpty(t *testing.T) {
	os.Clearenv()

	cfg := &Config{Host: "original", Port: 1234, Username: "bob"}
	LoadFromEnv(cfg)

	if cfg.Host != "original" {
		t.Errorf("Host was overridden: %q", cfg.Host)
	}
	if cfg.Port != 1234 {
		t.Errorf("Port was overridden: %d", cfg.Port)
	}
	if cfg.Username != "bob" {
		t.Errorf("Username was overridden: %q", cfg.Username)
	}
}

func TestLoadFromEnv_InvalidIntIgnored(t *testing.T) {
	t.Setenv("DOGECHAT_PORT", "not-a-number")
	cfg := &Config{Port: 80}
	LoadFromEnv(cfg)
	if cfg.Port != 80 {
		t.Errorf("Port should stay 80 for invalid input, got %d", cfg.Port)
	}
}

func TestLoadFromEnv_Verbose(t *testing.T) {
	t.Setenv("DOGECHAT_VERBOSE", "3")
	cfg := &Config{}
	LoadFromEnv(cfg)
	if cfg.Verbose != 3 {
		t.Errorf("Verbose = %d, want 3", cfg.Verbose)
	}
}
