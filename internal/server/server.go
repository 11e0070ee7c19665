// Package server exposes the layout engine over a single websocket
// endpoint. Each connection gets its own session and engine; the
// geometry all lives in internal/core, this is only the shell that
// feeds poses in and snapshots out.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/holoscene/holoscene/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Server accepts pose streams on /pose and observer connections on
// /observe. Observers receive every snapshot produced by any session;
// a lesson dashboard uses this to mirror what the headset user sees.
type Server struct {
	config Config
	logger log.Log

	httpServer *http.Server

	sessions     sync.Map // uuid string -> *sessionConn
	sessionCount int64    // atomic

	observers sync.Map // *websocket.Conn -> struct{}
	observeMu sync.Mutex

	closed int32 // atomic bool
}

type sessionConn struct {
	session *Session
	conn    *websocket.Conn
}

func NewServer(config Config, logger log.Log) (*Server, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Server{
		config: config,
		logger: logger,
	}, nil
}

// Start begins serving and returns immediately; Stop shuts down.
func (s *Server) Start(ctx context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if s.httpServer != nil {
		return ErrServerAlreadyRunning
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/pose", s.handlePose)
	mux.HandleFunc("/observe", s.handleObserve)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      mux,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		s.logger.Info("pose stream server listening",
			log.String("addr", s.httpServer.Addr),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("serve failed", log.Error("err", err))
		}
	}()
	return nil
}

// Stop closes the listener and every live connection.
func (s *Server) Stop() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return ErrServerClosed
	}

	s.sessions.Range(func(_, v any) bool {
		_ = v.(*sessionConn).conn.Close()
		return true
	})
	s.observers.Range(func(k, _ any) bool {
		_ = k.(*websocket.Conn).Close()
		return true
	})

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// SessionCount reports the number of live pose sessions.
func (s *Server) SessionCount() int64 {
	return atomic.LoadInt64(&s.sessionCount)
}

func (s *Server) handlePose(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt64(&s.sessionCount) >= int64(s.config.MaxSessions) {
		http.Error(w, ErrMaxSessionsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", log.Error("err", err))
		return
	}

	session, err := NewSession(s.config, s.logger)
	if err != nil {
		s.logger.Error("session setup failed", log.Error("err", err))
		_ = conn.Close()
		return
	}

	sc := &sessionConn{session: session, conn: conn}
	s.sessions.Store(session.ID().String(), sc)
	atomic.AddInt64(&s.sessionCount, 1)
	s.logger.Info("session opened", log.String("session", session.ID().String()))

	go s.readLoop(sc)
}

// readLoop is the single goroutine that owns a session's engine; every
// message is handled to completion before the next read.
func (s *Server) readLoop(sc *sessionConn) {
	defer func() {
		s.sessions.Delete(sc.session.ID().String())
		atomic.AddInt64(&s.sessionCount, -1)
		_ = sc.conn.Close()
		s.logger.Info("session closed", log.String("session", sc.session.ID().String()))
	}()

	for {
		_, data, err := sc.conn.ReadMessage()
		if err != nil {
			return
		}

		reply, err := sc.session.Handle(data)
		if err != nil {
			s.logger.Warn("message rejected",
				log.String("session", sc.session.ID().String()),
				log.Error("err", err),
			)
			if out, encErr := encode(TypeError, ErrorMessage{Reason: err.Error()}); encErr == nil {
				_ = sc.conn.WriteMessage(websocket.TextMessage, out)
			}
			continue
		}
		if reply == nil {
			continue
		}

		if err := sc.conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			return
		}
		s.broadcast(reply)
	}
}

func (s *Server) handleObserve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("observer upgrade failed", log.Error("err", err))
		return
	}
	s.observers.Store(conn, struct{}{})

	// Observers only listen; drain reads to notice disconnects.
	go func() {
		defer func() {
			s.observers.Delete(conn)
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast fans a snapshot out to every observer concurrently. A slow
// or dead observer only costs its own write deadline, not the session.
func (s *Server) broadcast(data []byte) {
	var conns []*websocket.Conn
	s.observers.Range(func(k, _ any) bool {
		conns = append(conns, k.(*websocket.Conn))
		return true
	})
	if len(conns) == 0 {
		return
	}

	s.observeMu.Lock()
	defer s.observeMu.Unlock()

	g := errgroup.Group{}
	for _, conn := range conns {
		conn := conn
		g.Go(func() error {
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			return conn.WriteMessage(websocket.TextMessage, data)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Debug("observer write failed", log.Error("err", err))
	}
}
