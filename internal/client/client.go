// Package client implements the chat peer: a synchronous prompt-driven send
// path and a concurrent receive path over one connection, coordinated by a
// sticky liveness flag.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync/atomic"

	"github.com/strelets/chatd/internal/wire"
)

type Client struct {
	conn     net.Conn
	username string

	// running only ever flips true to false, from either path.
	running atomic.Bool

	in  *bufio.Reader
	out io.Writer

	// immutable during runtime
	handlers map[wire.Kind]msgHandler

	// fatalExit runs when the server drops the connection mid-session.
	// Losing the server is unrecoverable for this client, so the default
	// kills the process; tests substitute their own.
	fatalExit func()
}

// Run dials the server and drives a full interactive session on stdin and
// stdout. It returns once the user quits or authentication is rejected.
func Run(addr, username string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	return New(conn, username, os.Stdin, os.Stdout).Run()
}

// New builds a client over an established connection. Input and output are
// injectable so a session can be scripted.
func New(conn net.Conn, username string, in io.Reader, out io.Writer) *Client {
	c := &Client{
		conn:      conn,
		username:  username,
		in:        bufio.NewReader(in),
		out:       out,
		handlers:  make(map[wire.Kind]msgHandler),
		fatalExit: func() { os.Exit(1) },
	}
	c.registerHandlers()
	return c
}

// Run authenticates, then starts the receive path and hands the calling
// goroutine to the prompt loop.
func (c *Client) Run() error {
	defer c.conn.Close()

	if err := c.authenticate(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Authenticated as %s\n", c.username)

	c.running.Store(true)
	go c.recvLoop()
	c.promptLoop()
	return nil
}

// authenticate sends one AUTH and blocks for exactly one reply. An ERROR
// reply is a rejection; any other reply counts as acceptance (the server's
// first presence broadcast usually arrives here, so render it).
func (c *Client) authenticate() error {
	err := wire.SendMessage(c.conn, wire.Message{Kind: wire.Auth, Username: c.username})
	if err != nil {
		return fmt.Errorf("send auth: %w", err)
	}

	reply, err := wire.RecvMessage(c.conn)
	if err != nil {
		return fmt.Errorf("read auth reply: %w", err)
	}
	if reply.Kind == wire.Error {
		return fmt.Errorf("authentication rejected: %s", reply.Content)
	}

	c.handleMessage(reply)
	return nil
}

func (c *Client) promptLoop() {
	for c.running.Load() {
		target, ok := c.prompt("Enter username to chat with (or 'list' to see online users): ")
		if !ok {
			c.running.Store(false)
			return
		}
		if target == "" {
			continue
		}

		if target == "list" {
			c.sendOrStop(wire.Message{Kind: wire.List, Username: c.username})
			continue
		}

		content, ok := c.prompt("Enter message (or 'exit' to quit): ")
		if !ok {
			c.running.Store(false)
			return
		}
		if content == "exit" {
			c.sendOrStop(wire.Message{Kind: wire.Disconnect, Username: c.username})
			c.running.Store(false)
			return
		}

		c.sendOrStop(wire.Message{
			Kind:     wire.Chat,
			Username: c.username,
			Target:   target,
			Content:  content,
		})
	}
}

// recvLoop renders inbound messages until the session winds down. A read
// failure while the client still wants to run means the server is gone;
// that is fatal, not a condition to recover from.
func (c *Client) recvLoop() {
	for c.running.Load() {
		msg, err := wire.RecvMessage(c.conn)
		if err != nil {
			if c.running.CompareAndSwap(true, false) {
				fmt.Fprintln(c.out, "Disconnected from server")
				c.fatalExit()
			}
			return
		}
		c.handleMessage(msg)
	}
}

func (c *Client) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

func (c *Client) sendOrStop(msg wire.Message) {
	if err := wire.SendMessage(c.conn, msg); err != nil {
		fmt.Fprintln(c.out, "Send failed:", err)
		c.running.Store(false)
	}
}
