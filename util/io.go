package util

import (
	"errors"
	"io"
	"net"
)

// IsClosed reports whether err only says that the local side closed
// the stream, which is expected during shutdown and not worth logging.
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	// net.OpError wrapping "use of closed network connection"
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}
