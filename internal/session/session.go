// Package session runs one chat session: it opens the stream, announces
// the local username, sends chat text and turns inbound frames into
// Messages for a Listener.
//
// All readiness events of a session are handled on a single goroutine,
// in arrival order, and the Listener is called on that goroutine.  Join,
// Send and Close may be called from any goroutine.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"dogechat/internal/errors"
	"dogechat/internal/metrics"
	"dogechat/internal/stream"
	"dogechat/internal/transport"
	"dogechat/internal/wire"
	"dogechat/util"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateJoined
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	Dialer       transport.Dialer // defaults to a plain TCP dialer
	Network      string           // defaults to "tcp"
	WriteTimeout time.Duration
	Logger       *util.Logger
	Metrics      *metrics.Collector // optional
}

// Session is a single chat session.  It moves through
// disconnected → connected → joined → closed and never goes back.
type Session struct {
	id      string
	opts    Options
	logger  *util.Logger
	metrics *metrics.Collector

	mu       sync.Mutex
	state    State
	opening  bool
	username string
	listener Listener
	stream   *stream.Stream

	done     chan struct{}
	doneOnce sync.Once
}

// New returns a disconnected Session.
func New(opts Options) *Session {
	if opts.Dialer == nil {
		opts.Dialer = &transport.TCPDialer{}
	}
	if opts.Network == "" {
		opts.Network = "tcp"
	}
	if opts.Logger == nil {
		opts.Logger = util.NewLogger(0)
	}

	id := uuid.NewString()
	return &Session{
		id:      id,
		opts:    opts,
		logger:  opts.Logger.WithPrefix("session " + id[:8]),
		metrics: opts.Metrics,
		done:    make(chan struct{}),
	}
}

// ID returns the random identifier used to tag this session's log lines.
func (s *Session) ID() string { return s.id }

// SetListener replaces the message listener.  A nil listener makes the
// session drop decoded messages.  The session does not own the listener
// and never closes or releases it.
func (s *Session) SetListener(l Listener) {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Username returns the name recorded by Join, or "" before Join.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Done is closed once no further messages can arrive: the session was
// closed, the peer ended the stream, or the stream failed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Open connects to host:port and starts handling readiness events.  A
// connection failure is returned as *errors.NetworkError.
func (s *Session) Open(ctx context.Context, host string, port int) error {
	s.mu.Lock()
	switch {
	case s.state == StateClosed:
		s.mu.Unlock()
		return errors.ErrClosed
	case s.state != StateDisconnected || s.opening:
		s.mu.Unlock()
		return errors.ErrAlreadyOpen
	}
	s.opening = true
	s.mu.Unlock()

	addr := util.FormatAddr(host, port)
	s.logger.Verbose("connecting to %s (%s)", addr, s.opts.Network)

	st, err := stream.Open(ctx, s.opts.Dialer, s.opts.Network, addr, stream.Options{
		MaxReadLength: util.MaxReadLength,
		WriteTimeout:  s.opts.WriteTimeout,
		Logger:        s.logger,
	})

	s.mu.Lock()
	s.opening = false
	if err != nil {
		s.mu.Unlock()
		s.metrics.RecordError(err.Error())
		return err
	}
	if s.state == StateClosed {
		// Close won the race while we were dialing.
		s.mu.Unlock()
		st.Close()
		return errors.ErrClosed
	}
	s.stream = st
	s.state = StateConnected
	s.mu.Unlock()

	s.logger.Verbose("connected to %s", addr)
	go s.run(st)
	return nil
}

// Join records username and announces it with an identify frame.  The
// session counts as joined as soon as the frame is handed to the
// stream; nothing is acknowledged.
func (s *Session) Join(username string) error {
	frame, err := wire.Encode(wire.TagIdentify, username)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}

	s.mu.Lock()
	switch s.state {
	case StateDisconnected:
		s.mu.Unlock()
		return errors.ErrNotConnected
	case StateClosed:
		s.mu.Unlock()
		return errors.ErrClosed
	case StateJoined:
		s.mu.Unlock()
		return errors.ErrAlreadyJoined
	}
	s.username = username
	s.state = StateJoined
	st := s.stream
	s.mu.Unlock()

	s.logger.Verbose("joining as %q", username)
	return s.write(st, "join", frame)
}

// Send writes text as a chat frame.  The username is not part of the
// frame; peers attribute it from the earlier identify frame.  Sending
// before Join is allowed.  Text outside ASCII yields an
// *errors.EncodingError and nothing is written.
func (s *Session) Send(text string) error {
	frame, err := wire.Encode(wire.TagChat, text)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	s.mu.Lock()
	st, state := s.stream, s.state
	s.mu.Unlock()

	switch state {
	case StateDisconnected:
		return errors.ErrNotConnected
	case StateClosed:
		return errors.ErrClosed
	}
	return s.write(st, "send", frame)
}

// Close ends the session without flushing anything in flight.  It is
// safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosed
	st := s.stream
	s.mu.Unlock()

	s.logger.Verbose("closing")
	if st == nil {
		s.finish()
		return nil
	}
	return st.Close()
}

// write hands one frame to the stream.  op names the caller in the
// returned error.
func (s *Session) write(st *stream.Stream, op string, frame []byte) error {
	n, err := st.Write(frame)
	if err != nil {
		s.metrics.RecordError(err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.FrameSent(n)
	s.logger.Debug("sent %d bytes", n)
	return nil
}

func (s *Session) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

// run is the event goroutine.  It exits when the stream stops producing
// events.
func (s *Session) run(st *stream.Stream) {
	defer s.finish()

	for ev := range st.Events() {
		switch ev.Kind {
		case stream.EventBytesAvailable:
			s.readAvailableBytes(st)
			st.Ack()
		case stream.EventEndEncountered:
			s.logger.Verbose("peer closed the stream")
			s.Close() //nolint:errcheck
		case stream.EventErrorOccurred:
			s.logger.Warn("stream error: %v", ev.Err)
			s.metrics.RecordError(ev.Err.Error())
		default:
			s.logger.Debug("stream event: %s", ev.Kind)
		}
	}
}

// readAvailableBytes decodes every read of the current burst on its
// own.  A frame split across two reads arrives as two broken frames.
func (s *Session) readAvailableBytes(st *stream.Stream) {
	bufp := util.GetBuf()
	defer util.PutBuf(bufp)
	buf := *bufp

	for st.HasBytesAvailable() && !st.IsClosed() {
		n, err := st.Read(buf)
		if n <= 0 || err != nil {
			break
		}
		s.metrics.FrameReceived(n)

		msg, ok := s.processFrame(buf[:n])
		if !ok {
			s.metrics.FrameDropped()
			s.logger.Debug("dropped undecodable frame (%d bytes)", n)
			continue
		}
		s.deliver(msg)
	}
}

func (s *Session) processFrame(data []byte) (Message, bool) {
	name, text, ok := wire.Decode(data)
	if !ok {
		return Message{}, false
	}

	s.mu.Lock()
	self := s.username
	s.mu.Unlock()

	sender := SenderOther
	if name == self {
		sender = SenderSelf
	}
	return Message{Username: name, Text: text, Sender: sender}, true
}

func (s *Session) deliver(msg Message) {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return
	}
	l.ReceivedMessage(msg)
	s.metrics.MessageDelivered()
}
