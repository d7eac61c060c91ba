//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"chat-relay/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives outbound events for one connection. Consume must not
// block the router: implementations buffer or drop.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRouter drives the room/session state machine. Each call runs one
// transition to completion; transitions never interleave.
type IRouter interface {
	Join(ctx context.Context, cmd domain.JoinRoomCommand)
	Send(ctx context.Context, cmd domain.SendMessageCommand)
	Disconnect(ctx context.Context, cmd domain.DisconnectCommand)
	Dispatch(cmd domain.Command)
	Attach(connID string, sink EventSink)
	Detach(connID string)
}
