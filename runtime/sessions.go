package runtime

import "chat-relay/domain"

// SessionTable is the single source of truth for "who is this connection
// right now". Room membership and history are derived bookkeeping that
// can always be rebuilt from the sessions.
//
// The table never validates usernames or rooms: the Router does that
// before calling Set.
type SessionTable struct {
	sessions map[string]domain.Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[string]domain.Session)}
}

func (t *SessionTable) Get(connID string) (domain.Session, bool) {
	session, ok := t.sessions[connID]
	return session, ok
}

// Set overwrites any prior session for connID.
func (t *SessionTable) Set(connID, username, roomID string) {
	t.sessions[connID] = domain.Session{Username: username, RoomID: roomID}
}

// Remove deletes the entry; no-op if absent.
func (t *SessionTable) Remove(connID string) {
	delete(t.sessions, connID)
}

func (t *SessionTable) Len() int {
	return len(t.sessions)
}

// ConnsInRoom returns the ids of every live connection whose session
// currently points at roomID. Broadcast fan-out enumerates this set
// right after a mutation, never a stale snapshot.
func (t *SessionTable) ConnsInRoom(roomID string) []string {
	var conns []string
	for connID, session := range t.sessions {
		if session.RoomID == roomID {
			conns = append(conns, connID)
		}
	}
	return conns
}
