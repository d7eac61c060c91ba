package ws

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	eventJoinRoom    = "join-room"
	eventSendMessage = "send-message"
)

var validate = validator.New()

// Envelope frames every WebSocket message in both directions.
type Envelope struct {
	Event string          `json:"event" validate:"required,oneof=join-room send-message"`
	Data  json.RawMessage `json:"data"`
}

type JoinPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type SendPayload struct {
	RoomID    string `json:"roomId"`
	Message   string `json:"message"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp,omitempty"`
}

// WireMessage is the message shape shared with clients.
type WireMessage struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

type errorPayload struct {
	Reason string `json:"reason"`
}

type usersPayload struct {
	Usernames []string `json:"usernames"`
}

// DecodeCommand parses one inbound frame into a command for connID.
// Structural problems (bad JSON, unknown event name) are the transport's
// to report; field-level validation stays in the core.
func DecodeCommand(connID string, frame []byte) (domain.Command, error) {
	var envelope Envelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if err := validate.Struct(envelope); err != nil {
		return nil, fmt.Errorf("unknown event %q: %w", envelope.Event, err)
	}

	switch envelope.Event {
	case eventJoinRoom:
		var payload JoinPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return nil, fmt.Errorf("malformed join payload: %w", err)
		}
		return domain.JoinRoomCommand{
			Conn:     connID,
			Room:     payload.RoomID,
			Username: payload.Username,
		}, nil
	case eventSendMessage:
		var payload SendPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return nil, fmt.Errorf("malformed send payload: %w", err)
		}
		return domain.SendMessageCommand{
			Conn:      connID,
			Room:      payload.RoomID,
			Username:  payload.Username,
			Text:      payload.Message,
			Timestamp: payload.Timestamp,
		}, nil
	}
	return nil, fmt.Errorf("unknown event %q", envelope.Event)
}

// EncodeEvent turns an outbound event into a wire frame.
func EncodeEvent(e event.DomainEvent) ([]byte, error) {
	var data any
	switch evt := e.(type) {
	case event.RoomError:
		data = errorPayload{Reason: evt.Reason}
	case event.ChatHistory:
		// An empty backfill must encode as [], not null.
		data = toWireMessages(evt.Messages)
	case event.UsersUpdated:
		data = usersPayload{Usernames: evt.Usernames}
	case event.MessageReceived:
		data = toWireMessage(evt.Message)
	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind())
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: e.Kind(), Data: payload})
}

func toWireMessages(messages []domain.Message) []WireMessage {
	out := lo.Map(messages, func(m domain.Message, _ int) WireMessage {
		return toWireMessage(m)
	})
	if out == nil {
		out = []WireMessage{}
	}
	return out
}

func toWireMessage(m domain.Message) WireMessage {
	return WireMessage{
		Message:   m.Text,
		Username:  m.Username,
		Timestamp: m.Timestamp,
	}
}
