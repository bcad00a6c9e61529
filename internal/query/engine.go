// Package query evaluates jq expressions against JSON report data and XPath
// expressions against XML report data.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Engine executes jq queries against JSON documents.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the output of a jq query.
type Result struct {
	Values    []any    `json:"values"`           // Extracted values, nulls dropped
	Errors    []string `json:"errors,omitempty"` // Runtime errors raised while iterating
	RawCount  int      `json:"raw_count"`        // Non-null values produced, including those past the limit
	Truncated bool     `json:"truncated,omitempty"`
}

// Query compiles expression and runs it against the JSON document data,
// keeping at most maxResults values (0 means unlimited). Runtime errors are
// collected in the result; only parse, compile and input errors are returned.
func (e *Engine) Query(data []byte, expression string, maxResults int) (*Result, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}

		if v == nil {
			continue
		}

		result.RawCount++
		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			continue
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// Validate checks that expression parses and compiles.
func (e *Engine) Validate(expression string) error {
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// formatJQError decorates common runtime errors with a hint about the
// report data shape. gojq raises these as plain errors, so the match is on
// the message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	msg := err.Error()
	var hint string
	switch {
	case strings.Contains(msg, "cannot iterate over: null"):
		hint = " (the path may not exist in this report)"
	case strings.Contains(msg, "cannot index") && strings.Contains(msg, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(msg, "object") && strings.Contains(msg, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	}
	return msg + hint
}
