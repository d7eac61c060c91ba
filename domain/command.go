package domain

// Command is an inbound connection event to be executed by the router.
type Command interface {
	ConnID() string
}

type JoinRoomCommand struct {
	Conn     string
	Room     string
	Username string
}

func (c JoinRoomCommand) ConnID() string {
	return c.Conn
}

type SendMessageCommand struct {
	Conn      string
	Room      string
	Username  string
	Text      string
	Timestamp string
}

func (c SendMessageCommand) ConnID() string {
	return c.Conn
}

// DisconnectCommand is fired by the transport when a connection closes.
type DisconnectCommand struct {
	Conn string
}

func (c DisconnectCommand) ConnID() string {
	return c.Conn
}
