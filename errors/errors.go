package errors

import "fmt"

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrInvalidRoomID   = fmt.Errorf("invalid room id")
	ErrEmptyUsername   = fmt.Errorf("username is empty")
	ErrNoSession       = fmt.Errorf("connection has no session")
	ErrSessionMismatch = fmt.Errorf("room or username does not match session")
	ErrEmptyWords      = fmt.Errorf("no words have been found")
)
