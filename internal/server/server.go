// Package server implements the chat server: a TCP acceptor that gates
// admissions on registry capacity, one session goroutine per connection,
// and presence broadcasts to every authenticated client.
package server

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/strelets/chatd/internal/registry"
	"github.com/strelets/chatd/internal/wire"
)

type Server struct {
	reg *registry.Registry
	log *logrus.Logger

	// immutable during runtime
	handlers map[wire.Kind]msgHandler
}

// New builds a server for the given configuration. Call Serve to start it.
func New(cfg *Config) *Server {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	s := &Server{
		reg:      registry.New(cfg.MaxClients),
		log:      log,
		handlers: make(map[wire.Kind]msgHandler),
	}
	s.registerHandlers()
	return s
}

// Run listens on cfg.Addr and serves until the listener fails.
func Run(cfg *Config) error {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	s := New(cfg)
	s.log.WithField("addr", listener.Addr()).Info("listening")
	return s.Serve(listener)
}

// Serve accepts connections until the listener fails. A connection arriving
// while the registry is full is turned away with a single ERROR record and
// never reaches a session goroutine, so capacity acts as an admission gate.
func (s *Server) Serve(listener net.Listener) error {
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}

		if s.reg.Full() {
			s.log.WithField("remote", conn.RemoteAddr()).Info("rejecting connection, server full")
			wire.SendMessage(conn, wire.Message{Kind: wire.Error, Content: serverFullReason})
			conn.Close()
			continue
		}

		go s.handleConn(conn)
	}
}
