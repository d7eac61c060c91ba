package ws

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// Conn pumps one WebSocket connection: the read pump turns frames into
// commands, the write pump turns events into frames. Both pumps stop
// when the peer goes away, and the read pump owns the disconnect
// notification to the router.
type Conn struct {
	id     string
	ws     *websocket.Conn
	sink   *Sink
	router contract.IRouter
	log    *slog.Logger
}

func NewConn(id string, ws *websocket.Conn, sink *Sink, router contract.IRouter, log *slog.Logger) *Conn {
	return &Conn{id: id, ws: ws, sink: sink, router: router, log: log}
}

// ReadPump decodes inbound frames and dispatches commands until the
// connection closes. Malformed frames are logged and dropped, they never
// reach the core. Shutdown arrives here indirectly: the write pump
// closes the socket and the blocked read fails.
func (c *Conn) ReadPump() {
	defer func() {
		c.router.Dispatch(domain.DisconnectCommand{Conn: c.id})
		c.router.Detach(c.id)
		_ = c.ws.Close()
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Warn("Unexpected close", "conn_id", c.id, "error", err)
			} else {
				c.log.Debug("Connection closed", "conn_id", c.id)
			}
			return
		}

		cmd, err := DecodeCommand(c.id, frame)
		if err != nil {
			c.log.Warn("Dropping inbound frame", "conn_id", c.id, "error", err)
			continue
		}
		c.router.Dispatch(cmd)
	}
}

// WritePump drains the sink and keeps the connection alive with pings.
func (c *Conn) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case e := <-c.sink.Events:
			frame, err := EncodeEvent(e)
			if err != nil {
				c.log.Warn("Dropping outbound event", "conn_id", c.id, "kind", e.Kind(), "error", err)
				continue
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug("Write failed, closing", "conn_id", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
