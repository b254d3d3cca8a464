package server

import (
	"errors"
	"net"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/strelets/chatd/internal/registry"
	"github.com/strelets/chatd/internal/wire"
)

const (
	usernameTakenReason  = "Username already taken"
	serverFullReason     = "Server is full. Try again later."
	targetNotFoundReason = "Target user not found"
)

// session is the per-connection state of one client, owned by a single
// goroutine. The registry slot is the only thing it shares with the rest
// of the server.
type session struct {
	conn          net.Conn
	username      string
	authenticated bool
	log           *logrus.Entry
}

func (s *Server) handleConn(conn net.Conn) {
	sess := &session{
		conn: conn,
		log: s.log.WithFields(logrus.Fields{
			"session": uuid.NewString(),
			"remote":  conn.RemoteAddr().String(),
		}),
	}
	defer s.teardown(sess)

	if !s.authenticate(sess) {
		return
	}
	s.routeLoop(sess)
}

// authenticate runs the AwaitingAuth state: exactly one record is read, and
// anything but a registrable AUTH ends the session before it ever touches
// the registry.
func (s *Server) authenticate(sess *session) bool {
	msg, err := wire.RecvMessage(sess.conn)
	if err != nil || msg.Kind != wire.Auth {
		return false
	}

	switch err := s.reg.Register(sess.conn, msg.Username); {
	case errors.Is(err, registry.ErrUsernameTaken):
		s.sendError(sess, usernameTakenReason)
		return false
	case errors.Is(err, registry.ErrFull):
		// The acceptor checks capacity too; a connection that lost that
		// race gets the same rejection here.
		s.sendError(sess, serverFullReason)
		return false
	case err != nil:
		return false
	}

	sess.username = msg.Username
	sess.authenticated = true
	sess.log = sess.log.WithField("username", msg.Username)
	sess.log.Info("client connected")

	s.publishPresence()
	return true
}

// routeLoop is the Authenticated state: read records and dispatch until the
// client says goodbye or the connection dies. Unexpected kinds (a second
// AUTH, a stray ERROR) are ignored rather than fatal.
func (s *Server) routeLoop(sess *session) {
	for {
		msg, err := wire.RecvMessage(sess.conn)
		if err != nil {
			return
		}
		if msg.Kind == wire.Disconnect {
			return
		}

		if handler, ok := s.handlers[msg.Kind]; ok {
			handler(s, sess, msg)
		} else {
			sess.log.WithField("kind", msg.Kind.String()).Debug("ignoring unexpected message kind")
		}
	}
}

// teardown is the Closed state. The slot is released before the presence
// update so remaining clients see the departure, and a session that never
// authenticated releases nothing (Unregister is a no-op for unknown conns).
func (s *Server) teardown(sess *session) {
	s.reg.Unregister(sess.conn)
	sess.conn.Close()

	if sess.authenticated {
		sess.log.Info("client disconnected")
		s.publishPresence()
	}
}

func (s *Server) sendError(sess *session, reason string) {
	err := wire.SendMessage(sess.conn, wire.Message{Kind: wire.Error, Content: reason})
	if err != nil {
		sess.log.WithError(err).Debug("error reply not delivered")
	}
}
