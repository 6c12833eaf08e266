package stream

// EventKind classifies a readiness notification.
type EventKind int

const (
	// EventOther covers notifications nobody acts on, such as the open
	// completing.
	EventOther EventKind = iota
	// EventBytesAvailable means at least one byte can be read without
	// blocking.  The consumer must call Stream.Ack once it is done
	// reading so the next notification can be produced.
	EventBytesAvailable
	// EventSpaceAvailable means the stream accepts writes.
	EventSpaceAvailable
	// EventEndEncountered means the peer closed its side.  No further
	// events follow.
	EventEndEncountered
	// EventErrorOccurred carries a read failure in Err.  No further
	// events follow.
	EventErrorOccurred
)

func (k EventKind) String() string {
	switch k {
	case EventBytesAvailable:
		return "bytes-available"
	case EventSpaceAvailable:
		return "space-available"
	case EventEndEncountered:
		return "end-encountered"
	case EventErrorOccurred:
		return "error-occurred"
	default:
		return "other"
	}
}

// Event is one readiness notification.
type Event struct {
	Kind EventKind
	Err  error // set for EventErrorOccurred
}
