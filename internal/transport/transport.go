// Package transport provides abstractions for establishing the byte
// stream a chat session runs over.  Transports handle the "how" of
// data movement (plain TCP, or frames tunnelled inside WebSocket
// messages) independent of what is sent over the stream.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound byte streams.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer.
	// Stateless dialers return nil.
	Close() error
}
