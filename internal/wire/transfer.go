package wire

import (
	"io"
	"net"
)

// SendMessage writes exactly one record. The whole block goes out in a
// single Write call so concurrent senders on the same conn cannot
// interleave partial records.
func SendMessage(conn net.Conn, msg Message) error {
	rec := Encode(msg)
	_, err := conn.Write(rec[:])
	return err
}

// RecvMessage reads exactly one record. It either returns a complete
// message or an error: a stream read that would stop short of the record
// boundary is retried by io.ReadFull until the block is full or the
// connection fails.
func RecvMessage(conn net.Conn) (Message, error) {
	var rec [RecordSize]byte
	if _, err := io.ReadFull(conn, rec[:]); err != nil {
		return Message{}, err
	}
	return Decode(rec), nil
}
