package session

// Sender classifies where a message came from relative to the local
// username.
type Sender int

const (
	SenderSelf Sender = iota
	SenderOther
)

func (s Sender) String() string {
	if s == SenderSelf {
		return "self"
	}
	return "other"
}

// Message is one decoded chat line.  It is a value; the session keeps no
// reference to it after delivery.
type Message struct {
	Username string
	Text     string
	Sender   Sender
}

// Listener receives decoded messages.  ReceivedMessage runs on the
// session's event goroutine, in decode order, so it should return
// quickly.
type Listener interface {
	ReceivedMessage(msg Message)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Message)

// ReceivedMessage calls f(msg).
func (f ListenerFunc) ReceivedMessage(msg Message) { f(msg) }
