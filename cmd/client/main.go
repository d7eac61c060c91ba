package main

import (
	"bufio"
	"chat-relay/transport/ws"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string `env:"CHAT_SERVER_URL,default=ws://localhost:8080/ws"`
	RoomID    string `env:"CHAT_ROOM_ID,required=true"`
	Username  string `env:"CHAT_USERNAME,required=true"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the WebSocket client lifecycle, configuration loading, and the
// read/write loops. This pattern ensures clean resource management and error
// propagation.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect and join the configured room.
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.ServerURL, nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", config.ServerURL, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	if err := writeFrame(conn, "join-room", ws.JoinPayload{
		RoomID:   config.RoomID,
		Username: config.Username,
	}); err != nil {
		return exitRuntime, err
	}

	color.Green.Printf(">>> Connected to %s as %q, room %s (Ctrl+C to quit)\n",
		config.ServerURL, config.Username, config.RoomID)

	// 4. Reception loop in the background.
	readErr := make(chan error, 1)
	go func() {
		readErr <- receive(conn)
	}()

	// 5. Stdin loop: every line becomes a send-message frame.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			err := writeFrame(conn, "send-message", ws.SendPayload{
				RoomID:   config.RoomID,
				Username: config.Username,
				Message:  scanner.Text(),
			})
			if err != nil {
				log.Warn("Send failed", "error", err)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Stopping client...")
		return exitOK, nil
	case err := <-readErr:
		if ctx.Err() != nil {
			return exitOK, nil
		}
		return exitRuntime, err
	}
}

func writeFrame(conn *websocket.Conn, eventName string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(ws.Envelope{Event: eventName, Data: data})
}

// receive renders server events until the connection drops.
func receive(conn *websocket.Conn) error {
	for {
		var envelope ws.Envelope
		if err := conn.ReadJSON(&envelope); err != nil {
			return fmt.Errorf("stream error: %w", err)
		}

		switch envelope.Event {
		case "chat-history":
			var history []ws.WireMessage
			if err := json.Unmarshal(envelope.Data, &history); err != nil {
				continue
			}
			for _, msg := range history {
				printMessage(msg, color.Gray)
			}
		case "receive-message":
			var msg ws.WireMessage
			if err := json.Unmarshal(envelope.Data, &msg); err != nil {
				continue
			}
			printMessage(msg, color.Cyan)
		case "update-users":
			var users struct {
				Usernames []string `json:"usernames"`
			}
			if err := json.Unmarshal(envelope.Data, &users); err != nil {
				continue
			}
			printRoster(users.Usernames)
		case "room-error":
			var payload struct {
				Reason string `json:"reason"`
			}
			if err := json.Unmarshal(envelope.Data, &payload); err != nil {
				continue
			}
			color.Red.Printf("!!! %s\n", payload.Reason)
		}
	}
}

func printMessage(msg ws.WireMessage, c color.Color) {
	c.Printf("[%s] %s: %s\n", msg.Timestamp, msg.Username, msg.Message)
}

func printRoster(usernames []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"In the room"})
	for _, username := range usernames {
		table.Append([]string{username})
	}
	table.Render()
}
