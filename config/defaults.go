package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultHost is the chat server address when none is given.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the chat server port.  Existing servers listen on
	// plain port 80.
	DefaultPort = 80

	// DefaultTransport is the raw TCP byte stream.
	DefaultTransport = TransportTCP

	// DefaultWSPath is the request path for the ws transport.
	DefaultWSPath = "/"

	// DefaultConnTimeout bounds connection setup.
	DefaultConnTimeout = 30 * time.Second

	// DefaultVerbosity prints warnings and errors only.
	DefaultVerbosity = 1
)
