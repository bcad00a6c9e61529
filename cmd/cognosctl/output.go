package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// printer writes command results in the selected format.
type printer func(w io.Writer, v any) error

func newPrinter(format string) (printer, error) {
	switch format {
	case "json", "":
		return printJSON, nil
	case "yaml", "yml":
		return printYAML, nil
	default:
		return nil, fmt.Errorf("unknown output format %q: use json or yaml", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeOutput writes v to w in the format chosen with --output.
func writeOutput(w io.Writer, v any) error {
	p, err := newPrinter(outputFormat)
	if err != nil {
		return err
	}
	return p(w, v)
}

// rawJSON converts an API body so that the YAML printer renders it as a
// document instead of a byte list.
func rawJSON(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}
