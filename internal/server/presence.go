package server

import (
	"strings"

	"github.com/strelets/chatd/internal/wire"
)

// publishPresence pushes the current online-user list to every
// authenticated client. The names and the recipients come from one atomic
// registry snapshot; the sends happen after the lock is released so a slow
// client cannot stall registration or routing for everyone else. A failed
// send to one recipient does not stop the rest.
func (s *Server) publishPresence() {
	names, conns := s.reg.Snapshot()

	msg := wire.Message{
		Kind:    wire.List,
		Content: strings.Join(names, "\n"),
	}
	for _, conn := range conns {
		if err := wire.SendMessage(conn, msg); err != nil {
			s.log.WithError(err).Debug("presence send failed")
		}
	}
}
