package client

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/strelets/chatd/internal/wire"
)

type msgHandler func(*Client, wire.Message)

func (c *Client) handleMessage(msg wire.Message) {
	if handler, ok := c.handlers[msg.Kind]; ok {
		handler(c, msg)
	}
	// anything else from the server is dropped on the floor
}

func (c *Client) registerHandlers() {
	c.handlers[wire.List] = onList
	c.handlers[wire.Chat] = onChat
	c.handlers[wire.Error] = onError
}

func onList(c *Client, msg wire.Message) {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.AppendHeader(table.Row{"#", "online"})

	n := 0
	for _, name := range strings.Split(msg.Content, "\n") {
		if name == "" {
			continue
		}
		n++
		t.AppendRow(table.Row{n, name})
	}

	fmt.Fprintln(c.out)
	t.Render()
}

func onChat(c *Client, msg wire.Message) {
	fmt.Fprintf(c.out, "\nMessage from %s: %s\n", msg.Username, msg.Content)
}

func onError(c *Client, msg wire.Message) {
	fmt.Fprintf(c.out, "\nError: %s\n", msg.Content)
}
