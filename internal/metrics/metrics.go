// Package metrics provides lightweight, lock-free counters for tracking
// the traffic of a chat session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a chat session.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	framesSent      atomic.Int64
	framesReceived  atomic.Int64
	framesDropped   atomic.Int64
	messagesHandled atomic.Int64
	bytesIn         atomic.Int64
	bytesOut        atomic.Int64
	errorsTotal     atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Frame metrics ────────────────────────────────────────────────────

// FrameSent records one outgoing frame of n bytes.
func (c *Collector) FrameSent(n int) {
	if c == nil {
		return
	}
	c.framesSent.Add(1)
	c.bytesOut.Add(int64(n))
}

// FrameReceived records one inbound read of n bytes.
func (c *Collector) FrameReceived(n int) {
	if c == nil {
		return
	}
	c.framesReceived.Add(1)
	c.bytesIn.Add(int64(n))
}

// FrameDropped records an inbound frame that failed to decode.
func (c *Collector) FrameDropped() {
	if c == nil {
		return
	}
	c.framesDropped.Add(1)
}

// MessageDelivered records a message handed to the listener.
func (c *Collector) MessageDelivered() {
	if c == nil {
		return
	}
	c.messagesHandled.Add(1)
}

// FramesSent returns the number of frames written.
func (c *Collector) FramesSent() int64 {
	if c == nil {
		return 0
	}
	return c.framesSent.Load()
}

// FramesReceived returns the number of inbound reads decoded.
func (c *Collector) FramesReceived() int64 {
	if c == nil {
		return 0
	}
	return c.framesReceived.Load()
}

// FramesDropped returns the number of undecodable inbound frames.
func (c *Collector) FramesDropped() int64 {
	if c == nil {
		return 0
	}
	return c.framesDropped.Load()
}

// MessagesDelivered returns the number of messages handed to the
// listener.
func (c *Collector) MessagesDelivered() int64 {
	if c == nil {
		return 0
	}
	return c.messagesHandled.Load()
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	FramesSent        int64  `json:"frames_sent"`
	FramesReceived    int64  `json:"frames_received"`
	FramesDropped     int64  `json:"frames_dropped"`
	MessagesDelivered int64  `json:"messages_delivered"`
	BytesIn           int64  `json:"bytes_in"`
	BytesOut          int64  `json:"bytes_out"`
	ErrorsTotal       int64  `json:"errors_total"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Second).String(),
		FramesSent:        c.framesSent.Load(),
		FramesReceived:    c.framesReceived.Load(),
		FramesDropped:     c.framesDropped.Load(),
		MessagesDelivered: c.messagesHandled.Load(),
		BytesIn:           c.bytesIn.Load(),
		BytesOut:          c.bytesOut.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
