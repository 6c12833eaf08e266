package util

import "sync"

// MaxReadLength is the capacity of one inbound read.  A single read
// never returns more than this many bytes, and each read is decoded as
// one frame.
const MaxReadLength = 4096

// ReadBufPool provides reusable read buffers so a session does not
// allocate a fresh buffer per readiness burst.
var ReadBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, MaxReadLength)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return ReadBufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	ReadBufPool.Put(buf)
}
