package service

import "fmt"

type ErrorKind int

const (
	KindClient ErrorKind = iota + 1
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindClient:
		return "client_error"
	case KindServer:
		return "server_error"
	default:
		return "unknown_error"
	}
}

// Error is returned by every service operation. Message is safe to show to
// the caller; Err keeps the cause for logging and errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func clientError(message string, cause error) *Error {
	return &Error{Kind: KindClient, Message: message, Err: cause}
}

func serverError(prefix string, cause error) *Error {
	return &Error{Kind: KindServer, Message: fmt.Sprintf("%s: %v", prefix, cause), Err: cause}
}
