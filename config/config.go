// Package config defines the runtime configuration for dogechat and
// provides helpers for parsing and validating it.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dogechat/internal/errors"
)

// Transport names accepted by --transport.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

// Config holds every tuneable for a single chat session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host         string
	Port         int
	Transport    string // "tcp" or "ws"
	WSPath       string // request path for the ws transport
	Timeout      time.Duration
	WriteTimeout time.Duration
	NoDNS        bool

	// ── Identity ─────────────────────────────────────────────────────
	Username string

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Transport: DefaultTransport,
		WSPath:    DefaultWSPath,
		Timeout:   DefaultConnTimeout,
		Verbose:   DefaultVerbosity,
	}
}

// ParsePort accepts a decimal port number in 1-65535.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(spec))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &errors.ConfigError{
			Field:   "host",
			Message: "hostname is required",
			Hint:    "pass it as the first argument or set DOGECHAT_HOST",
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &errors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
			Hint:    "use a port between 1 and 65535",
		}
	}
	if c.Username == "" {
		return &errors.ConfigError{
			Field:   "username",
			Message: "a username is required to join the chat",
			Hint:    "use -u <name> or set DOGECHAT_USERNAME",
		}
	}
	if !isASCII(c.Username) {
		return &errors.ConfigError{
			Field:   "username",
			Value:   c.Username,
			Message: "must be plain ASCII",
		}
	}
	if strings.Contains(c.Username, ":") {
		return &errors.ConfigError{
			Field:   "username",
			Value:   c.Username,
			Message: "must not contain ':'",
			Hint:    "peers split frames on ':' and would misattribute your messages",
		}
	}

	switch c.Transport {
	case TransportTCP:
	case TransportWebSocket:
		if !strings.HasPrefix(c.WSPath, "/") {
			return &errors.ConfigError{
				Field:   "ws-path",
				Value:   c.WSPath,
				Message: "must start with '/'",
			}
		}
	default:
		return &errors.ConfigError{
			Field:   "transport",
			Value:   c.Transport,
			Message: "unknown transport",
			Hint:    "use tcp or ws",
		}
	}

	if c.Timeout < 0 {
		return &errors.ConfigError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "must not be negative",
			Hint:    "use 0 to leave connection setup unbounded",
		}
	}
	if c.WriteTimeout < 0 {
		return &errors.ConfigError{
			Field:   "write-timeout",
			Value:   c.WriteTimeout,
			Message: "must not be negative",
			Hint:    "use 0 to disable the write deadline",
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
