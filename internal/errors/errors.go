// Package errors provides domain-specific error types for dogechat.
//
// These types carry structured context (operation, address, offending
// character) that helps callers decide how to handle failures and gives
// better diagnostics than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNotConnected  = errors.New("not connected")
	ErrAlreadyOpen   = errors.New("session already opened")
	ErrAlreadyJoined = errors.New("already joined")
	ErrClosed        = errors.New("session is closed")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.  A
// NetworkError with Op "dial" is the connection-setup failure: it is
// fatal to the attempted session and always returned to the caller.
type NetworkError struct {
	Op        string // operation: "dial", "handshake", "write", "read"
	Addr      string // network address involved
	Err       error  // underlying error
	Retryable bool   // diagnostic hint only; nothing retries automatically
}

func (e *NetworkError) Error() string {
	s := fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
	if e.Retryable {
		s += " (retryable)"
	}
	return s
}

func (e *NetworkError) Unwrap() error { return e.Err }

// EncodingError reports text that cannot be put on the wire because it
// contains a character outside the 7-bit ASCII range.
type EncodingError struct {
	Rune   rune // first offending character
	Offset int  // byte offset of Rune in the input
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode: non-ASCII character %q at offset %d", e.Rune, e.Offset)
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError, automatically detecting retryability
// from the underlying error.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{
		Op:        op,
		Addr:      addr,
		Err:       err,
		Retryable: classifyRetryable(err),
	}
}

// ── Classification helpers ───────────────────────────────────────────

// IsEncoding reports whether err is (or wraps) an EncodingError.
func IsEncoding(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}

// classifyRetryable inspects standard library error types.
func classifyRetryable(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() //nolint:staticcheck
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }
