package transport

import (
	"context"
	"net"
	"time"
)

// TCPDialer opens the raw byte stream the chat protocol normally runs
// over.
type TCPDialer struct {
	// Timeout bounds connection setup.  Zero leaves it to ctx.
	Timeout time.Duration
}

// Dial connects to address.  network is normally "tcp"; "tcp4" and
// "tcp6" pin the address family.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	nd := net.Dialer{Timeout: d.Timeout}
	return nd.DialContext(ctx, network, address)
}

// Close is a no-op; TCPDialer keeps no state between dials.
func (d *TCPDialer) Close() error { return nil }
