package bizyair

import (
	"errors"
	"fmt"
)

// Error codes carried by [Error].
const (
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeConnectionFailed  = "CONNECTION_FAILED"
	CodeBadRequest        = "BAD_REQUEST"
	CodeStreamError       = "STREAM_ERROR"
)

// Error represents a BizyAir client error.
//
// Every error returned by this package is an *Error. Use [errors.Is] with
// the sentinel values below, or [errors.As] to inspect the code, the HTTP
// status and the underlying cause:
//
//	body, err := client.Send(ctx)
//	if errors.Is(err, bizyair.ErrUnauthorized) {
//	    // ask the user for a new key
//	}
type Error struct {
	Code    string
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bizyair: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("bizyair: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors.
var (
	ErrInvalidCredential = &Error{Code: CodeInvalidCredential, Message: "invalid API key"}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "invalid credentials", Status: 401}
	ErrConnection        = &Error{Code: CodeConnectionFailed, Message: "failed to connect to the server"}
	ErrBadRequest        = &Error{Code: CodeBadRequest, Message: "invalid request"}
	ErrStream            = &Error{Code: CodeStreamError, Message: "malformed event stream"}
)

// StatusError is the cause of a connection error produced by a non-2xx
// response other than 401.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP Error %s", e.Status)
	}
	return fmt.Sprintf("HTTP Error %s: %s", e.Status, e.Body)
}

// IsInvalidCredential reports whether err is a local API key validation failure.
func IsInvalidCredential(err error) bool {
	return errors.Is(err, ErrInvalidCredential)
}

// IsAuthorizationError reports whether the server rejected the API key.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsConnectionError reports whether err is a transport failure.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

func newError(code, message string, status int, cause error) *Error {
	return &Error{Code: code, Message: message, Status: status, Cause: cause}
}
