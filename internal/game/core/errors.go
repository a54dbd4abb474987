package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrMatchFull          = errors.New("match already has two players")
	ErrUnknownClient      = errors.New("client is not seated in this match")
	ErrMatchEnded         = errors.New("match has ended")
)

// ClientError ties a failure to the connection that caused it
type ClientError struct {
	ClientID  uint64
	Operation string
	Err       error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client %d %s: %v", e.ClientID, e.Operation, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// WrapClientError returns nil when err is nil
func WrapClientError(clientID uint64, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ClientError{ClientID: clientID, Operation: operation, Err: err}
}
