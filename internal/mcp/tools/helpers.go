// Package tools implements the cognos_* MCP tools. Handlers are built from
// Deps and return typed outputs; failures are CodedErrors.
package tools

import (
	"encoding/json"
	"time"
)

// MimeJSON is the MIME type of JSON resource contents.
const MimeJSON = "application/json"

// ToAny decodes a raw Cognos body so it can sit in a typed tool output. An
// empty body yields nil.
func ToAny(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// formatTime renders t as RFC 3339 UTC, or "" for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
