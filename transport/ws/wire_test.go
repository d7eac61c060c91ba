package ws

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRoom = "11111111-1111-1111-1111-111111111111"

func TestDecodeCommand_JoinRoom(t *testing.T) {
	req := require.New(t)
	frame := []byte(`{"event":"join-room","data":{"roomId":"` + testRoom + `","username":"alice"}}`)

	cmd, err := DecodeCommand("conn1", frame)

	req.NoError(err)
	join, ok := cmd.(domain.JoinRoomCommand)
	req.True(ok)
	req.Equal("conn1", join.Conn)
	req.Equal(testRoom, join.Room)
	req.Equal("alice", join.Username)
}

func TestDecodeCommand_SendMessage(t *testing.T) {
	req := require.New(t)
	frame := []byte(`{"event":"send-message","data":{"roomId":"` + testRoom +
		`","message":"hi","username":"alice","timestamp":"5/4/2026, 10:12:01 AM"}}`)

	cmd, err := DecodeCommand("conn1", frame)

	req.NoError(err)
	send, ok := cmd.(domain.SendMessageCommand)
	req.True(ok)
	req.Equal("hi", send.Text)
	req.Equal("5/4/2026, 10:12:01 AM", send.Timestamp)
}

func TestDecodeCommand_RejectsBadFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{name: "Not JSON", frame: `{nope`},
		{name: "Unknown event name", frame: `{"event":"shout","data":{}}`},
		{name: "Missing event name", frame: `{"data":{}}`},
		{name: "Join payload wrong shape", frame: `{"event":"join-room","data":"oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand("conn1", []byte(tt.frame))
			require.Error(t, err)
		})
	}
}

func TestEncodeEvent_EmptyHistoryIsAnArray(t *testing.T) {
	req := require.New(t)

	frame, err := EncodeEvent(event.ChatHistory{Conn: "conn1"})

	req.NoError(err)
	req.JSONEq(`{"event":"chat-history","data":[]}`, string(frame))
}

func TestEncodeEvent_History(t *testing.T) {
	req := require.New(t)
	e := event.ChatHistory{Conn: "conn1", Messages: []domain.Message{
		{Username: "alice", Text: "hi", Timestamp: "t1", RoomID: testRoom},
	}}

	frame, err := EncodeEvent(e)

	req.NoError(err)
	req.JSONEq(`{"event":"chat-history","data":[{"message":"hi","username":"alice","timestamp":"t1"}]}`, string(frame))
}

func TestEncodeEvent_MessageReceived(t *testing.T) {
	req := require.New(t)
	e := event.MessageReceived{
		Room:       testRoom,
		SenderConn: "conn1",
		Message:    domain.Message{Username: "alice", Text: "hi", Timestamp: "t1", RoomID: testRoom},
	}

	frame, err := EncodeEvent(e)

	req.NoError(err)
	req.JSONEq(`{"event":"receive-message","data":{"message":"hi","username":"alice","timestamp":"t1"}}`, string(frame))
	// The sender's connection id never crosses the wire
	req.NotContains(string(frame), "conn1")
}

func TestEncodeEvent_UsersAndErrors(t *testing.T) {
	req := require.New(t)

	frame, err := EncodeEvent(event.UsersUpdated{Room: testRoom, Usernames: []string{"alice", "bob"}})
	req.NoError(err)
	req.JSONEq(`{"event":"update-users","data":{"usernames":["alice","bob"]}}`, string(frame))

	frame, err = EncodeEvent(event.RoomError{Conn: "conn1", Reason: "invalid room id"})
	req.NoError(err)
	req.JSONEq(`{"event":"room-error","data":{"reason":"invalid room id"}}`, string(frame))
}

func TestEncodeDecode_Roundtrip_Envelope(t *testing.T) {
	req := require.New(t)

	frame, err := EncodeEvent(event.UsersUpdated{Room: testRoom, Usernames: []string{"alice"}})
	req.NoError(err)

	var envelope Envelope
	req.NoError(json.Unmarshal(frame, &envelope))
	req.Equal("update-users", envelope.Event)
}
