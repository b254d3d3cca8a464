// Package registry tracks the authenticated sessions of the chat server in
// a fixed-capacity slot table. Every operation is a critical section under
// one mutex, so callers never observe a partial update.
package registry

import (
	"errors"
	"net"
	"sync"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrFull          = errors.New("server is full")
)

type slot struct {
	conn          net.Conn
	username      string
	authenticated bool
}

type Registry struct {
	mu    sync.Mutex
	slots []slot
}

// New creates a registry with room for capacity concurrent clients.
func New(capacity int) *Registry {
	return &Registry{slots: make([]slot, capacity)}
}

// Register claims the first empty slot for conn under username. It fails
// with ErrUsernameTaken if another authenticated slot already holds the
// name, and with ErrFull if no slot is empty. Concurrent calls serialize:
// for the same username exactly one of them succeeds.
func (r *Registry) Register(conn net.Conn, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slots {
		if r.slots[i].authenticated && r.slots[i].username == username {
			return ErrUsernameTaken
		}
	}

	for i := range r.slots {
		if r.slots[i].conn == nil {
			r.slots[i] = slot{conn: conn, username: username, authenticated: true}
			return nil
		}
	}
	return ErrFull
}

// Unregister clears the slot holding conn. Calling it for a conn that was
// never registered, or twice for the same conn, is a no-op.
func (r *Registry) Unregister(conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slots {
		if r.slots[i].conn == conn {
			r.slots[i] = slot{}
			return
		}
	}
}

// Find returns the connection of the authenticated session named username.
func (r *Registry) Find(username string) (net.Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slots {
		if r.slots[i].authenticated && r.slots[i].username == username {
			return r.slots[i].conn, true
		}
	}
	return nil, false
}

// Full reports whether every slot is occupied.
func (r *Registry) Full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slots {
		if r.slots[i].conn == nil {
			return false
		}
	}
	return true
}

// Usernames returns the authenticated usernames in slot order. The order is
// incidental, not a contract.
func (r *Registry) Usernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usernamesLocked()
}

// Targets returns the connections of every authenticated session, the
// recipients of a send-to-everyone.
func (r *Registry) Targets() []net.Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targetsLocked()
}

// Snapshot returns the authenticated usernames and their connections as one
// consistent view, taken under a single lock acquisition. Presence updates
// are built from this so the name list and the recipient list can never
// disagree.
func (r *Registry) Snapshot() ([]string, []net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.usernamesLocked(), r.targetsLocked()
}

func (r *Registry) usernamesLocked() []string {
	names := make([]string, 0, len(r.slots))
	for i := range r.slots {
		if r.slots[i].authenticated {
			names = append(names, r.slots[i].username)
		}
	}
	return names
}

func (r *Registry) targetsLocked() []net.Conn {
	conns := make([]net.Conn, 0, len(r.slots))
	for i := range r.slots {
		if r.slots[i].authenticated {
			conns = append(conns, r.slots[i].conn)
		}
	}
	return conns
}
