package server

import (
	"strings"

	"github.com/strelets/chatd/internal/wire"
)

type msgHandler func(*Server, *session, wire.Message)

func (s *Server) registerHandlers() {
	s.handlers[wire.Chat] = onChat
	s.handlers[wire.List] = onList
}

// onChat routes a point-to-point message. The record is forwarded verbatim;
// if the target is not online the sender gets one ERROR back and the session
// stays open. Nothing is ever queued for an offline user.
func onChat(s *Server, sess *session, msg wire.Message) {
	target, ok := s.reg.Find(msg.Target)
	if !ok {
		s.sendError(sess, targetNotFoundReason)
		return
	}

	if err := wire.SendMessage(target, msg); err != nil {
		// The target's own session will notice the dead connection and
		// tear itself down; the sender is not told.
		sess.log.WithError(err).Debug("forward failed")
	}
}

// onList answers a client's explicit request for the online-user list.
func onList(s *Server, sess *session, _ wire.Message) {
	names := s.reg.Usernames()
	err := wire.SendMessage(sess.conn, wire.Message{
		Kind:    wire.List,
		Content: strings.Join(names, "\n"),
	})
	if err != nil {
		sess.log.WithError(err).Debug("list reply not delivered")
	}
}
