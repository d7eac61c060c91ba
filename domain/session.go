package domain

// Session is the live binding of one connection to one (username, room)
// pair. A connection has at most one Session at a time.
type Session struct {
	Username string
	RoomID   string
}
