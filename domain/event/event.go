// Package event defines the outbound events produced by the router and
// delivered by the transport. Events are values, never mutated after
// creation.
package event

import "chat-relay/domain"

// DomainEvent is anything the router wants delivered to one or many
// connections. Kind is the wire-level event name.
type DomainEvent interface {
	Kind() string
}

// RoomError reports a rejected command to the originating connection only.
type RoomError struct {
	Conn   string
	Reason string
}

func (RoomError) Kind() string {
	return "room-error"
}

// ChatHistory carries the backfill snapshot sent to a connection right
// after a successful join.
type ChatHistory struct {
	Conn     string
	Messages []domain.Message
}

func (ChatHistory) Kind() string {
	return "chat-history"
}

// UsersUpdated is broadcast to every occupant of a room after any
// membership change.
type UsersUpdated struct {
	Room      string
	Usernames []string
}

func (UsersUpdated) Kind() string {
	return "update-users"
}

// MessageReceived is broadcast to every occupant of a room except the
// sender.
type MessageReceived struct {
	Room       string
	SenderConn string
	Message    domain.Message
}

func (MessageReceived) Kind() string {
	return "receive-message"
}
