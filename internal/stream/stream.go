// Package stream owns the byte stream a chat session runs over and turns
// it into readiness notifications.
//
// A watcher goroutine waits until input is buffered and then posts an
// EventBytesAvailable.  It stays parked until the consumer calls Ack, so
// the read buffer has exactly one user at any time: either the watcher
// filling it or the consumer draining it with Read.
package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	cerrors "dogechat/internal/errors"
	"dogechat/internal/transport"
	"dogechat/util"
)

// Options tunes a Stream.  The zero value is usable.
type Options struct {
	// MaxReadLength caps a single Read.  Defaults to util.MaxReadLength.
	MaxReadLength int
	// WriteTimeout bounds each Write when positive.
	WriteTimeout time.Duration
	// Logger receives debug output.  Defaults to a quiet logger.
	Logger *util.Logger
}

// Stream is an open input/output pair.  It cannot be reopened once
// closed.
type Stream struct {
	raw    net.Conn
	r      *bufio.Reader
	addr   string
	opts   Options
	logger *util.Logger

	events chan Event
	resume chan struct{}
	stop   chan struct{}

	wmu       sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
}

// Open dials address and starts readiness notifications.  A dial failure
// is returned as *errors.NetworkError with Op "dial".
func Open(ctx context.Context, d transport.Dialer, network, address string, opts Options) (*Stream, error) {
	conn, err := d.Dial(ctx, network, address)
	if err != nil {
		return nil, cerrors.Wrap("dial", address, err)
	}
	return newStream(conn, address, opts), nil
}

// FromConn wraps an already connected net.Conn.
func FromConn(conn net.Conn, opts Options) *Stream {
	addr := ""
	if ra := conn.RemoteAddr(); ra != nil {
		addr = ra.String()
	}
	return newStream(conn, addr, opts)
}

func newStream(conn net.Conn, addr string, opts Options) *Stream {
	if opts.MaxReadLength <= 0 {
		opts.MaxReadLength = util.MaxReadLength
	}
	if opts.Logger == nil {
		opts.Logger = util.NewLogger(0)
	}

	s := &Stream{
		raw:    conn,
		r:      bufio.NewReaderSize(conn, opts.MaxReadLength),
		addr:   addr,
		opts:   opts,
		logger: opts.Logger,
		events: make(chan Event),
		resume: make(chan struct{}),
		stop:   make(chan struct{}),
	}
	go s.watch()
	return s
}

// Events delivers readiness notifications in the order they occur.  The
// channel is closed when no more notifications will be produced.
func (s *Stream) Events() <-chan Event { return s.events }

// Addr returns the remote address the stream was opened to.
func (s *Stream) Addr() string { return s.addr }

// HasBytesAvailable reports whether Read can return data without
// touching the network.
func (s *Stream) HasBytesAvailable() bool { return s.r.Buffered() > 0 }

// Read copies up to MaxReadLength buffered bytes into p.  Call it only
// between an EventBytesAvailable and the matching Ack, and only while
// HasBytesAvailable is true; otherwise it may block.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) > s.opts.MaxReadLength {
		p = p[:s.opts.MaxReadLength]
	}
	return s.r.Read(p)
}

// Ack re-arms the watcher after an EventBytesAvailable was handled.
func (s *Stream) Ack() {
	select {
	case s.resume <- struct{}{}:
	case <-s.stop:
	}
}

// Write issues a single write.  A short write is reported, not retried.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, cerrors.ErrClosed
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	if s.opts.WriteTimeout > 0 {
		if err := s.raw.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout)); err != nil {
			return 0, cerrors.Wrap("write", s.addr, err)
		}
	}
	n, err := s.raw.Write(p)
	if err != nil {
		if s.closed.Load() {
			return n, cerrors.ErrClosed
		}
		return n, cerrors.Wrap("write", s.addr, err)
	}
	return n, nil
}

// Close closes both halves.  Calling it again is a no-op.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.stop)
		err = s.raw.Close()
	})
	return err
}

// IsClosed reports whether Close has been called.
func (s *Stream) IsClosed() bool { return s.closed.Load() }

func (s *Stream) watch() {
	defer close(s.events)

	if !s.emit(Event{Kind: EventOther}) || !s.emit(Event{Kind: EventSpaceAvailable}) {
		return
	}

	for {
		_, err := s.r.Peek(1)
		switch {
		case err == nil:
			if !s.emit(Event{Kind: EventBytesAvailable}) {
				return
			}
			select {
			case <-s.resume:
			case <-s.stop:
				return
			}
		case s.closed.Load() || util.IsClosed(err):
			s.logger.Debug("stream %s: watcher stopped", s.addr)
			return
		case errors.Is(err, io.EOF):
			s.emit(Event{Kind: EventEndEncountered})
			return
		default:
			s.emit(Event{Kind: EventErrorOccurred, Err: cerrors.Wrap("read", s.addr, err)})
			return
		}
	}
}

// emit hands ev to the consumer unless the stream is closed first.
func (s *Stream) emit(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.stop:
		return false
	}
}
