package workers

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/runtime"
	"context"
	"log/slog"
)

// Ensure *RouterWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*RouterWorker)(nil)

// RouterWorker drains the command queue and runs one transition to
// completion at a time. It is the single consumer of the queue, which is
// what serializes every mutation of the room, history, and session
// stores: concurrency across connections exists only at the transport
// boundary, upstream of this loop.
type RouterWorker struct {
	router *runtime.Router
	log    *slog.Logger
}

func NewRouterWorker(router *runtime.Router, log *slog.Logger) *RouterWorker {
	return &RouterWorker{router: router, log: log}
}

func (w *RouterWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case cmd, ok := <-w.router.Commands():
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.route(ctx, cmd)
		}
	}
}

func (w *RouterWorker) route(ctx context.Context, cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.JoinRoomCommand:
		w.router.Join(ctx, c)
	case domain.SendMessageCommand:
		w.router.Send(ctx, c)
	case domain.DisconnectCommand:
		w.router.Disconnect(ctx, c)
	default:
		w.log.Warn("Unknown command kind", "conn_id", cmd.ConnID())
	}
}
