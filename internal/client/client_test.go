package client

import (
	"bytes"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/strelets/chatd/internal/wire"
)

// syncBuffer keeps the scripted output race-free: the prompt path and the
// receive path both write to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// startFakeServer accepts one connection, answers the AUTH with authReply,
// and streams every following record into the returned channel.
func startFakeServer(t *testing.T, authReply wire.Message) (string, <-chan wire.Message) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	received := make(chan wire.Message, 16)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		if auth, err := wire.RecvMessage(conn); err != nil || auth.Kind != wire.Auth {
			return
		}
		wire.SendMessage(conn, authReply)
		if authReply.Kind == wire.Error {
			return
		}

		for {
			msg, err := wire.RecvMessage(conn)
			if err != nil {
				return
			}
			received <- msg
		}
	}()

	return listener.Addr().String(), received
}

func dial(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func nextMessage(t *testing.T, ch <-chan wire.Message) wire.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message at fake server")
		return wire.Message{}
	}
}

func TestScriptedSession(t *testing.T) {
	addr, received := startFakeServer(t, wire.Message{Kind: wire.List, Content: "alice\nbob"})

	// list, then one message to alice, then quit
	input := strings.NewReader("list\nalice\nhi\nanyone\nexit\n")
	out := &syncBuffer{}

	c := New(dial(t, addr), "bob", input, out)
	c.fatalExit = func() { t.Error("fatalExit fired during a graceful session") }

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if msg := nextMessage(t, received); msg.Kind != wire.List {
		t.Errorf("first message = %s, want LIST request", msg.Kind)
	}
	chat := nextMessage(t, received)
	if chat.Kind != wire.Chat || chat.Username != "bob" || chat.Target != "alice" || chat.Content != "hi" {
		t.Errorf("chat = %+v, want bob->alice %q", chat, "hi")
	}
	if msg := nextMessage(t, received); msg.Kind != wire.Disconnect {
		t.Errorf("last message = %s, want DISCONNECT", msg.Kind)
	}

	got := out.String()
	if !strings.Contains(got, "Authenticated as bob") {
		t.Errorf("output missing auth confirmation:\n%s", got)
	}
	if !strings.Contains(got, "alice") {
		t.Errorf("output missing rendered online list:\n%s", got)
	}
}

func TestAuthRejectionIsFatal(t *testing.T) {
	addr, _ := startFakeServer(t, wire.Message{Kind: wire.Error, Content: "Username already taken"})

	c := New(dial(t, addr), "bob", strings.NewReader(""), &syncBuffer{})

	err := c.Run()
	if err == nil {
		t.Fatal("Run returned nil for a rejected AUTH")
	}
	if !strings.Contains(err.Error(), "rejected") {
		t.Errorf("error = %v, want rejection", err)
	}
}

func TestServerDropIsFatal(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		if _, err := wire.RecvMessage(conn); err != nil {
			return
		}
		wire.SendMessage(conn, wire.Message{Kind: wire.List, Content: "bob"})
		// hang up mid-session
		conn.Close()
	}()

	// the prompt blocks forever so only the receive path can end the run
	blockedInput, inputFeed := io.Pipe()
	t.Cleanup(func() { inputFeed.Close() })

	out := &syncBuffer{}
	fatal := make(chan struct{})

	c := New(dial(t, listener.Addr().String()), "bob", blockedInput, out)
	c.fatalExit = func() { close(fatal) }
	go c.Run()

	select {
	case <-fatal:
	case <-time.After(2 * time.Second):
		t.Fatal("client did not treat the dropped connection as fatal")
	}
	if got := out.String(); !strings.Contains(got, "Disconnected from server") {
		t.Errorf("output missing disconnect notice:\n%s", got)
	}
}
