package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/moderation"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Ensure *Router implements the contract.IRouter interface at compile time.
// This prevents "type mismatch" errors from appearing late in other packages
// and acts as a static assertion of our architectural rules.
var _ contract.IRouter = (*Router)(nil)

// Router executes the join, send, and disconnect transitions against the
// three stores. Every transition is a multi-step read-modify-write across
// two or three stores, so a single mutex runs each one to completion
// before the next begins; a disconnect can never tear through a send for
// the same connection. Nothing in here blocks: store operations are
// in-memory and sinks are non-blocking by contract.
type Router struct {
	mu        sync.Mutex
	log       *slog.Logger
	rooms     *RoomRegistry
	history   *HistoryStore
	sessions  *SessionTable
	sinks     *SinkRegistry
	moderator *moderation.Moderator
	commands  chan domain.Command
}

// NewRouter wires the stores once at process start; there are no hidden
// package-level singletons. A nil moderator disables censoring.
func NewRouter(log *slog.Logger, moderator *moderation.Moderator, bufferSize int) *Router {
	return &Router{
		log:       log,
		rooms:     NewRoomRegistry(),
		history:   NewHistoryStore(),
		sessions:  NewSessionTable(),
		sinks:     NewSinkRegistry(),
		moderator: moderator,
		commands:  make(chan domain.Command, bufferSize),
	}
}

// Attach registers the delivery sink for a freshly accepted connection.
func (r *Router) Attach(connID string, sink contract.EventSink) {
	r.sinks.Attach(connID, sink)
}

// Detach drops the delivery sink once the connection is gone.
func (r *Router) Detach(connID string) {
	r.sinks.Detach(connID)
}

// Dispatch queues cmd for the router worker. Non-blocking: a full queue
// drops the command, delivery is best-effort at-most-once.
func (r *Router) Dispatch(cmd domain.Command) {
	select {
	case r.commands <- cmd:
	default:
		r.log.Warn("Command channel full, dropping command", "conn_id", cmd.ConnID())
	}
}

// Commands exposes the queue to the router worker.
func (r *Router) Commands() <-chan domain.Command {
	return r.commands
}

// Join moves a connection from Unjoined to Joined. A rejoin first vacates
// the old room, so the connection is ever a member of at most one room.
func (r *Router) Join(ctx context.Context, cmd domain.JoinRoomCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !domain.IsValidRoomID(cmd.Room) {
		r.reject(ctx, cmd.Conn, errors.ErrInvalidRoomID)
		return
	}
	if !domain.IsNonEmptyText(cmd.Username) {
		r.reject(ctx, cmd.Conn, errors.ErrEmptyUsername)
		return
	}

	// Rejoin: vacate the old room before establishing the new session,
	// so the old room's roster update goes to its remaining occupants
	// only.
	if prev, ok := r.sessions.Get(cmd.Conn); ok {
		r.sessions.Remove(cmd.Conn)
		r.vacate(ctx, prev)
	}

	username := strings.TrimSpace(cmd.Username)
	r.sessions.Set(cmd.Conn, username, cmd.Room)
	r.rooms.AddMember(cmd.Room, username)

	r.deliver(ctx, cmd.Conn, event.ChatHistory{
		Conn:     cmd.Conn,
		Messages: r.history.Snapshot(cmd.Room),
	})
	r.broadcast(ctx, cmd.Room, "", event.UsersUpdated{
		Room:      cmd.Room,
		Usernames: r.rooms.Members(cmd.Room),
	})

	r.log.Debug("Connection joined",
		"conn_id", cmd.Conn,
		"room_id", cmd.Room,
		"members", r.rooms.MemberCount(cmd.Room))
}

// Send appends a validated message to history and fans it out to every
// other occupant of the room. The claimed room and username must exactly
// match the connection's session, which prevents spoofing another user
// or injecting into a foreign room.
func (r *Router) Send(ctx context.Context, cmd domain.SendMessageCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !domain.IsNonEmptyText(cmd.Text) {
		// Empty payloads are dropped without a reply.
		return
	}
	if !domain.IsValidRoomID(cmd.Room) {
		r.reject(ctx, cmd.Conn, errors.ErrInvalidRoomID)
		return
	}
	session, ok := r.sessions.Get(cmd.Conn)
	if !ok {
		r.reject(ctx, cmd.Conn, errors.ErrNoSession)
		return
	}
	if session.RoomID != cmd.Room || session.Username != cmd.Username {
		r.reject(ctx, cmd.Conn, errors.ErrSessionMismatch)
		return
	}

	text := strings.TrimSpace(cmd.Text)
	if r.moderator != nil {
		text, _ = r.moderator.Censor(text)
	}

	timestamp := cmd.Timestamp
	if timestamp == "" {
		timestamp = time.Now().Format(time.RFC1123)
	}

	message := domain.Message{
		Username:  session.Username,
		Text:      text,
		Timestamp: timestamp,
		RoomID:    cmd.Room,
	}

	r.history.Append(cmd.Room, message)
	r.broadcast(ctx, cmd.Room, cmd.Conn, event.MessageReceived{
		Room:       cmd.Room,
		SenderConn: cmd.Conn,
		Message:    message,
	})
}

// Disconnect terminates a session's lifecycle. Without a session it is a
// no-op: the connection never joined.
func (r *Router) Disconnect(ctx context.Context, cmd domain.DisconnectCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions.Get(cmd.Conn)
	if !ok {
		return
	}

	r.sessions.Remove(cmd.Conn)
	r.vacate(ctx, session)

	r.log.Debug("Connection left", "conn_id", cmd.Conn, "room_id", session.RoomID)
}

// vacate removes the session's username from its room, tells the
// remaining occupants, and destroys the room (history included) the
// instant it becomes empty.
func (r *Router) vacate(ctx context.Context, session domain.Session) {
	r.rooms.RemoveMember(session.RoomID, session.Username)
	r.broadcast(ctx, session.RoomID, "", event.UsersUpdated{
		Room:      session.RoomID,
		Usernames: r.rooms.Members(session.RoomID),
	})
	if r.rooms.DeleteIfEmpty(session.RoomID) {
		r.history.Clear(session.RoomID)
	}
}

// broadcast fans an event out to every live connection whose session
// points at roomID, except excludeConn. The recipient set is read after
// the triggering mutation, never before.
func (r *Router) broadcast(ctx context.Context, roomID, excludeConn string, e event.DomainEvent) {
	for _, connID := range r.sessions.ConnsInRoom(roomID) {
		if connID == excludeConn {
			continue
		}
		r.deliver(ctx, connID, e)
	}
}

func (r *Router) deliver(ctx context.Context, connID string, e event.DomainEvent) {
	sink, ok := r.sinks.Get(connID)
	if !ok {
		r.log.Debug("No sink attached", "conn_id", connID, "kind", e.Kind())
		return
	}
	if err := sink.Consume(ctx, e); err != nil {
		r.log.Warn("Event delivery failed",
			"conn_id", connID,
			"kind", e.Kind(),
			"error", err)
	}
}

// reject reports a validation failure to the originating connection only.
// The stores stay untouched, rejection is side-effect-free.
func (r *Router) reject(ctx context.Context, connID string, reason error) {
	r.deliver(ctx, connID, event.RoomError{Conn: connID, Reason: reason.Error()})
}
