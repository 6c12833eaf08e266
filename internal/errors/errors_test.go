package errors

import (
	"fmt"
	"io"
	"net"
	"testing"
)

func TestNetworkError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  NetworkError
		want string
	}{
		{
			name: "retryable",
			err:  NetworkError{Op: "dial", Addr: "chat.local:80", Err: io.EOF, Retryable: true},
			want: "dial chat.local:80: EOF (retryable)",
		},
		{
			name: "non-retryable",
			err:  NetworkError{Op: "write", Addr: "127.0.0.1:80", Err: fmt.Errorf("broken pipe")},
			want: "write 127.0.0.1:80: broken pipe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := &NetworkError{Op: "dial", Addr: "x", Err: io.EOF}
	if !Is(err, io.EOF) {
		t.Error("should unwrap to io.EOF")
	}
}

func TestEncodingError_Format(t *testing.T) {
	err := &EncodingError{Rune: 'é', Offset: 3}
	want := `encode: non-ASCII character 'é' at offset 3`
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIsEncoding(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", &EncodingError{Rune: '☃', Offset: 0})
	if !IsEncoding(wrapped) {
		t.Error("wrapped EncodingError should be detected")
	}
	if IsEncoding(io.EOF) {
		t.Error("io.EOF is not an encoding error")
	}
	if IsEncoding(nil) {
		t.Error("nil is not an encoding error")
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "port",
				Value:   99999,
				Message: "out of range 1-65535",
				Hint:    "use a port between 1 and 65535",
			},
			want: "config: --port=99999: out of range 1-65535\n  hint: use a port between 1 and 65535",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "username",
				Message: "required",
			},
			want: "config: --username: required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := Wrap("dial", "10.0.0.1:80", inner)

	if err.Op != "dial" || err.Addr != "10.0.0.1:80" {
		t.Errorf("wrong fields: Op=%q Addr=%q", err.Op, err.Addr)
	}
	if !Is(err, inner) {
		t.Error("should unwrap to inner error")
	}
}

func TestClassifyRetryable_NetOpError(t *testing.T) {
	opErr := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: &net.DNSError{IsTemporary: true},
	}
	if !classifyRetryable(opErr) {
		t.Error("temporary OpError should be retryable")
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{ErrNotConnected, ErrAlreadyOpen, ErrAlreadyJoined, ErrClosed}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
