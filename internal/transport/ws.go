package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// DefaultWSPath is the request path used when WSDialer.Path is empty.
const DefaultWSPath = "/"

// WSDialer reaches a chat peer that sits behind a WebSocket endpoint.
// Every Write becomes one binary message and every inbound message is
// handed to the reader as one chunk, so a frame keeps the same
// boundaries it would have on a raw TCP stream.
type WSDialer struct {
	Timeout time.Duration
	Path    string
}

// Dial performs the WebSocket handshake against ws://address/Path.
// network is ignored; WebSocket always runs over TCP.
func (d *WSDialer) Dial(ctx context.Context, _, address string) (net.Conn, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	path := d.Path
	if path == "" {
		path = DefaultWSPath
	}
	u := url.URL{Scheme: "ws", Host: address, Path: path}

	conn, br, _, err := ws.Dial(ctx, u.String())
	if err != nil {
		return nil, err
	}

	wc := &wsConn{Conn: conn, src: conn}
	wc.out = &lockedWriter{mu: &wc.wmu, w: conn}
	if br != nil {
		// Bytes the server sent right after the handshake response.
		wc.src = io.MultiReader(br, conn)
	}
	return wc, nil
}

// Close is a no-op; each connection owns its own socket.
func (d *WSDialer) Close() error { return nil }

// wsConn adapts a client-side WebSocket to net.Conn byte semantics.
//
// Read answers pings and close frames from the reading goroutine while
// Write runs on the sender's, and a frame goes out as two writes, so
// every outbound frame is written under wmu.
type wsConn struct {
	net.Conn
	src     io.Reader // handshake leftovers, then the socket
	pending []byte    // unread tail of the last message

	wmu sync.Mutex
	out io.Writer // Conn, serialized by wmu
}

// lockedWriter holds mu for the length of each Write.  wsutil flushes
// each pong or close reply in a single Write, so one lock per call keeps
// those replies whole.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (c *wsConn) Read(p []byte) (int, error) {
	if len(c.pending) == 0 {
		rw := struct {
			io.Reader
			io.Writer
		}{c.src, c.out}

		data, _, err := wsutil.ReadServerData(rw)
		if err != nil {
			var closed wsutil.ClosedError
			if errors.As(err, &closed) {
				return 0, io.EOF
			}
			return 0, err
		}
		c.pending = data
	}

	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := wsutil.WriteClientBinary(c.Conn, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	c.wmu.Lock()
	_ = wsutil.WriteClientMessage(c.Conn, ws.OpClose, nil)
	c.wmu.Unlock()
	return c.Conn.Close()
}
