package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"dogechat/internal/errors"
	"dogechat/internal/session"
	"dogechat/util"
)

// QuitCommand typed on its own line ends the chat.
const QuitCommand = "/quit"

var (
	errQuit         = errors.New("quit requested")
	errSessionEnded = errors.New("session ended")
)

// ChatMode joins a chat as Username and relays between the terminal and
// the session: stdin lines become chat frames, received messages are
// printed to stdout.
type ChatMode struct {
	Host     string
	Port     int
	Username string
	Session  session.Options
	Logger   *util.Logger

	// Interactive prints a prompt and a banner.  Builder sets it when
	// stdin is a terminal.
	Interactive bool

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ChatMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ChatMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run opens the session, joins, and relays until the user quits, the
// peer closes the stream or ctx is cancelled.  End of input stops
// sending but keeps printing until the peer goes away.
func (m *ChatMode) Run(ctx context.Context) error {
	if m.Logger == nil {
		m.Logger = util.NewLogger(0)
	}
	if m.Session.Dialer != nil {
		defer m.Session.Dialer.Close()
	}

	view := &terminalView{out: m.stdout(), prompt: m.Interactive}
	sess := session.New(m.Session)
	sess.SetListener(view)

	addr := util.FormatAddr(m.Host, m.Port)
	if err := sess.Open(ctx, m.Host, m.Port); err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer sess.Close()

	if err := sess.Join(m.Username); err != nil {
		return fmt.Errorf("join as %q: %w", m.Username, err)
	}
	if m.Interactive {
		view.printf("joined %s as %s (type %s to leave)\n", addr, m.Username, QuitCommand)
		view.showPrompt()
	}

	g, gctx := errgroup.WithContext(ctx)
	lines := readLines(gctx, m.stdin())

	g.Go(func() error {
		return m.pumpInput(gctx, sess, view, lines)
	})
	g.Go(func() error {
		select {
		case <-sess.Done():
			return errSessionEnded
		case <-gctx.Done():
			return nil
		}
	})

	err := g.Wait()
	if m.Session.Metrics != nil {
		m.Logger.Verbose("session stats:\n%s", m.Session.Metrics.JSON())
	}
	if errors.Is(err, errQuit) || errors.Is(err, errSessionEnded) {
		return nil
	}
	return err
}

// pumpInput sends every input line until input ends, the user quits or
// ctx is cancelled.
func (m *ChatMode) pumpInput(ctx context.Context, sess *session.Session, view *terminalView, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				m.Logger.Verbose("end of input; waiting for the peer to close")
				return nil
			}
			text := strings.TrimRight(line, "\r")
			switch {
			case text == QuitCommand:
				return errQuit
			case strings.TrimSpace(text) == "":
				view.showPrompt()
				continue
			}

			err := sess.Send(text)
			switch {
			case err == nil:
			case errors.IsEncoding(err):
				// Recoverable: tell the user and keep the session.
				view.printf("not sent: %v\n", err)
			default:
				return err
			}
			view.showPrompt()
		}
	}
}

// readLines scans r on its own goroutine.  The channel is closed at end
// of input.  A read blocked on a terminal cannot be interrupted, so the
// goroutine only notices ctx once the read returns.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// terminalView prints messages for a human.  It is the session's
// listener and is also written to by the input pump.
type terminalView struct {
	mu     sync.Mutex
	out    io.Writer
	prompt bool
}

func (v *terminalView) ReceivedMessage(msg session.Message) {
	name := msg.Username
	if msg.Sender == session.SenderSelf {
		name = "you"
	}
	if v.prompt {
		// Start on a fresh line over the pending prompt.
		v.printf("\r[%s] %s\n", name, msg.Text)
		v.showPrompt()
		return
	}
	v.printf("[%s] %s\n", name, msg.Text)
}

func (v *terminalView) printf(format string, args ...interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *terminalView) showPrompt() {
	if v.prompt {
		v.printf("> ")
	}
}
