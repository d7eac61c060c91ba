// Package domain contains core concepts of the chat relay.
// This file defines Message values and related rules.
// Messages are immutable once built by the router.
package domain

// Message is an immutable chat record. Timestamp is an opaque display
// string: either the value the client supplied or the server wall clock.
type Message struct {
	Username  string
	Text      string
	Timestamp string
	RoomID    string
}
