// Package wire defines the fixed-record chat protocol: every message on the
// wire occupies exactly one RecordSize-byte block, so record boundaries are
// implicit and no length prefix or delimiter is needed.
package wire

import (
	"encoding/binary"
)

type Kind uint32

const (
	Auth Kind = iota
	List
	Chat
	Error
	Disconnect
)

func (k Kind) String() string {
	switch k {
	case Auth:
		return "AUTH"
	case List:
		return "LIST"
	case Chat:
		return "MESSAGE"
	case Error:
		return "ERROR"
	case Disconnect:
		return "DISCONNECT"
	}
	return "UNKNOWN"
}

const (
	// MaxNameLen bounds usernames and targets, MaxContentLen the payload.
	MaxNameLen    = 50
	MaxContentLen = 1024

	// RecordSize is the exact size of one encoded message: a 4-byte
	// big-endian kind followed by the three zero-padded text fields.
	RecordSize = 4 + 2*MaxNameLen + MaxContentLen
)

type Message struct {
	Kind     Kind
	Username string
	Target   string
	Content  string
}

// Encode lays the message out into a fixed RecordSize block. Overlong text
// fields are silently truncated to their field width.
func Encode(msg Message) [RecordSize]byte {
	var rec [RecordSize]byte
	binary.BigEndian.PutUint32(rec[0:4], uint32(msg.Kind))
	putField(rec[4:4+MaxNameLen], msg.Username)
	putField(rec[4+MaxNameLen:4+2*MaxNameLen], msg.Target)
	putField(rec[4+2*MaxNameLen:], msg.Content)
	return rec
}

// Decode interprets any RecordSize block as a message. It performs no
// validation: garbage decodes to some message, and rejecting it is the
// session handler's job, not the codec's.
func Decode(rec [RecordSize]byte) Message {
	return Message{
		Kind:     Kind(binary.BigEndian.Uint32(rec[0:4])),
		Username: getField(rec[4 : 4+MaxNameLen]),
		Target:   getField(rec[4+MaxNameLen : 4+2*MaxNameLen]),
		Content:  getField(rec[4+2*MaxNameLen:]),
	}
}

func putField(dst []byte, s string) {
	copy(dst, s)
}

func getField(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}
	return string(src)
}
