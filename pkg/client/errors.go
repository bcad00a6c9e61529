package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoLocation is returned when a created object's id cannot be read from
// the Location header.
var ErrNoLocation = errors.New("response has no Location header")

// APIError represents an error response from the Cognos REST API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cognos API error %d: %s", e.StatusCode, e.Message)
}

// Unauthenticated reports whether the API rejected the call for lack of a
// valid session. Cognos answers 441 when a logon is required.
func (e *APIError) Unauthenticated() bool {
	return e.StatusCode == 401 || e.StatusCode == 403 || e.StatusCode == 441
}

// SessionError is returned by SessionManager.GetClient when the transport for
// an endpoint could not be constructed.
type SessionError struct {
	Endpoint string
	Err      error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("creating session for %s: %v", e.Endpoint, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// EntryProjectionError describes a child record that could not be turned into
// a FolderDescriptor. Listings log it and skip the entry.
type EntryProjectionError struct {
	FolderID string
	Index    int
	Err      error
}

func (e *EntryProjectionError) Error() string {
	return fmt.Sprintf("entry %d of folder %s: %v", e.Index, e.FolderID, e.Err)
}

func (e *EntryProjectionError) Unwrap() error {
	return e.Err
}

// errorResponse covers the error bodies Cognos returns across API versions.
type errorResponse struct {
	Message      string `json:"message"`
	ErrorMessage string `json:"errorMessage"`
	Messages     []struct {
		MessageString string `json:"messageString"`
	} `json:"messages"`
}

// parseError builds an APIError from a failed response body.
func parseError(status int, body []byte) *APIError {
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil {
		switch {
		case errResp.Message != "":
			return &APIError{StatusCode: status, Message: errResp.Message}
		case errResp.ErrorMessage != "":
			return &APIError{StatusCode: status, Message: errResp.ErrorMessage}
		case len(errResp.Messages) > 0 && errResp.Messages[0].MessageString != "":
			return &APIError{StatusCode: status, Message: errResp.Messages[0].MessageString}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return &APIError{StatusCode: status, Message: msg}
}
