// Package core is the orchestration layer.  It composes a transport, a
// chat session and a terminal front end into a runnable mode and
// provides a builder that assembles it from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  stream  →  session  →  core  →  cmd (CLI)
package core

import "context"

// Mode is a complete operational mode of dogechat.  A mode owns its full
// lifecycle from connection establishment to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
