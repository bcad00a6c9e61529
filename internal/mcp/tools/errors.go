package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"path"

	"github.com/usestring/cognos-mcp/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeCognosError  = "COGNOS_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapCognosError converts a client error to a coded error.
func WrapCognosError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}
	coded = classify(err)

	slog.Warn("cognos API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

func classify(err error) *CodedError {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 404:
			return &CodedError{Code: ErrCodeNotFound, Message: apiErr.Message, Cause: err}
		case apiErr.Unauthenticated():
			return &CodedError{Code: ErrCodeUnauthorized, Message: "log in with cognos_login first: " + apiErr.Message, Cause: err}
		default:
			return &CodedError{Code: ErrCodeCognosError, Message: apiErr.Message, Cause: err}
		}
	}

	if errors.Is(err, path.ErrBadPattern) {
		return &CodedError{Code: ErrCodeInvalidInput, Message: "invalid name pattern", Cause: err}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	}

	var sessErr *client.SessionError
	if errors.As(err, &sessErr) {
		return &CodedError{Code: ErrCodeCognosError, Message: "cannot open a session with " + sessErr.Endpoint, Cause: err}
	}

	return &CodedError{Code: ErrCodeCognosError, Message: err.Error(), Cause: err}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
