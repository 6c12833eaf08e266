package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the DOGECHAT_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("DOGECHAT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("DOGECHAT_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("DOGECHAT_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("DOGECHAT_TRANSPORT"); v != "" {
		cfg.Transport = strings.ToLower(v)
	}
	if v := os.Getenv("DOGECHAT_WS_PATH"); v != "" {
		cfg.WSPath = v
	}
	if v := envInt("DOGECHAT_TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}
	if v := envInt("DOGECHAT_WRITE_TIMEOUT"); v > 0 {
		cfg.WriteTimeout = secondsDuration(v)
	}
	if envBool("DOGECHAT_NO_DNS") {
		cfg.NoDNS = true
	}
	if v := envInt("DOGECHAT_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
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

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
