package ws

import (
	"chat-relay/contract"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server owns the HTTP surface: the WebSocket upgrade endpoint and a
// health check. One Server serves many connections; all of them feed the
// same router.
//
// ctx is the process lifetime: cancelling it makes every write pump send
// a close frame and stop. The per-request context is useless here, it is
// cancelled as soon as the upgrade handler returns.
type Server struct {
	ctx        context.Context
	router     contract.IRouter
	log        *slog.Logger
	bufferSize int
	upgrader   websocket.Upgrader
}

func NewServer(ctx context.Context, router contract.IRouter, log *slog.Logger, connectionBufferSize int) *Server {
	return &Server{
		ctx:        ctx,
		router:     router,
		log:        log,
		bufferSize: connectionBufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Identity is a self-declared display name, origin checks
			// add nothing here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP mux: /ws for connections, /healthz for probes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// handleWebSocket upgrades the request, allocates a connection id,
// attaches a delivery sink, and starts both pumps. The connection is
// Unjoined until its first join-room frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	connID := uuid.NewString()
	sink := NewSink(s.bufferSize)
	s.router.Attach(connID, sink)

	conn := NewConn(connID, wsConn, sink, s.router, s.log)
	s.log.Debug("Connection accepted", "conn_id", connID, "remote", r.RemoteAddr)

	go conn.WritePump(s.ctx)
	go conn.ReadPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprint(w, "ok")
}
