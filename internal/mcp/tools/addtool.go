package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type passes the schema the SDK infers for it, so that nil-slice and raw JSON
// mistakes surface at registration rather than on the first call.
//
// Panics if the output type fails CheckOutputSchema.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the output type T cannot be served as a
// structured tool result:
//
//   - T refers to itself (a tree node with child nodes, say). Schema inference
//     rejects cycles, so trees must be flattened before they are returned.
//   - T holds a json.RawMessage. It marshals as embedded JSON but is inferred
//     as []byte, an array of integers. Decode API bodies with ToAny instead.
//   - The JSON encoding of T's zero value fails the inferred schema, which is
//     what happens when a slice without omitzero marshals as null.
//
// The untyped "any" output is not checked.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	elem := rt
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	if path := findCycle(elem, nil, make(map[reflect.Type]bool)); path != "" {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s is recursive at %s\n"+
				"  Fix: flatten the structure (for example a list of entries with parent ids)",
			toolName, elem, path,
		))
	}

	if paths := findRawMessageFields(elem, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s contains json.RawMessage at %s\n"+
				"  Fix: change the field type to any and decode the body with ToAny:\n"+
				"    v, err := ToAny(raw)\n"+
				"    output.Field = v",
			toolName, elem, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(elem, &jsonschema.ForOptions{})
	if err != nil {
		return // the SDK reports inference errors itself
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(elem).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add `omitzero` to nil-defaulting slice fields, or initialize them to empty slices",
			toolName, elem, err, data,
		))
	}
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// children returns the types reachable from t in one step with the path
// segment leading to each.
func children(t reflect.Type) ([]reflect.Type, []string) {
	switch t.Kind() {
	case reflect.Struct:
		var types []reflect.Type
		var names []string
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			types = append(types, f.Type)
			names = append(names, f.Name)
		}
		return types, names
	case reflect.Slice, reflect.Array:
		return []reflect.Type{t.Elem()}, []string{"[]"}
	case reflect.Map:
		return []reflect.Type{t.Elem()}, []string{"[value]"}
	}
	return nil, nil
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// findCycle returns the field path at which t first refers back to a type on
// the current path, or "" when t is not recursive.
func findCycle(t reflect.Type, path []string, onPath map[reflect.Type]bool) string {
	t = deref(t)
	if t.Kind() != reflect.Struct && t.Kind() != reflect.Slice && t.Kind() != reflect.Array && t.Kind() != reflect.Map {
		return ""
	}
	if onPath[t] {
		return strings.Join(path, ".")
	}
	onPath[t] = true
	defer delete(onPath, t)

	types, names := children(t)
	for i, ct := range types {
		if p := findCycle(ct, append(path, names[i]), onPath); p != "" {
			return p
		}
	}
	return ""
}

// findRawMessageFields returns the field paths of t that hold a json.RawMessage.
func findRawMessageFields(t reflect.Type, path []string, visited map[reflect.Type]bool) []string {
	t = deref(t)
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string
	types, names := children(t)
	for i, ct := range types {
		found = append(found, findRawMessageFields(ct, append(path, names[i]), visited)...)
	}
	return found
}
