// Package wire implements the chat frame format: "<tag>:<text>" as plain
// 7-bit ASCII with no length prefix and no terminator.
//
// The receiving side never reads the tag back.  Decode splits a frame on
// every ':' and treats the first field as the sender name and the last
// field as the text, so a chat text containing a colon loses its middle
// segments.
package wire

import (
	"strings"
	"unicode/utf8"

	"dogechat/internal/errors"
)

// Tag identifies the kind of outgoing frame.
type Tag string

const (
	// TagIdentify announces the local username to the peer.
	TagIdentify Tag = "iam"
	// TagChat carries user-entered text.
	TagChat Tag = "msg"
)

// Separator sits between the tag and the text of a frame.
const Separator = ":"

// Encode builds "<tag>:<text>" as ASCII bytes.  It returns an
// *errors.EncodingError when either part holds a non-ASCII character.
func Encode(tag Tag, text string) ([]byte, error) {
	if err := checkASCII(string(tag), 0); err != nil {
		return nil, err
	}
	if err := checkASCII(text, len(tag)+len(Separator)); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(tag)+len(Separator)+len(text))
	buf = append(buf, tag...)
	buf = append(buf, Separator...)
	buf = append(buf, text...)
	return buf, nil
}

// Decode recovers the sender name and text from one frame.  ok is false
// when data is not valid ASCII.
func Decode(data []byte) (name, text string, ok bool) {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return "", "", false
		}
	}
	fields := strings.Split(string(data), Separator)
	return fields[0], fields[len(fields)-1], true
}

// checkASCII reports the first non-ASCII character of s.  base is added
// to the reported offset so it points into the encoded frame.
func checkASCII(s string, base int) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return &errors.EncodingError{Rune: r, Offset: base + i}
		}
	}
	return nil
}
