// Package preview shortens decoded JSON documents for display: long arrays
// keep their first rows followed by a marker naming how many were dropped,
// and long strings are cut.
package preview

import (
	"fmt"
)

// Defaults used when an Options field is zero.
const (
	DefaultMaxRows      = 5
	DefaultMaxStringLen = 500
)

// Options controls trimming. Zero fields take the defaults; negative fields
// disable the corresponding limit.
type Options struct {
	MaxRows      int // items kept per array
	MaxStringLen int // bytes kept per string
}

func (o Options) withDefaults() Options {
	if o.MaxRows == 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.MaxStringLen == 0 {
		o.MaxStringLen = DefaultMaxStringLen
	}
	return o
}

// Stats reports what Trim removed.
type Stats struct {
	TrimmedArrays  int `json:"trimmed_arrays"`
	DroppedRows    int `json:"dropped_rows"`
	TrimmedStrings int `json:"trimmed_strings"`
}

// Trimmed reports whether anything was removed.
func (s Stats) Trimmed() bool {
	return s.TrimmedArrays > 0 || s.TrimmedStrings > 0
}

// Trim returns a shortened copy of v, a value produced by json.Unmarshal into
// an any. v itself is not modified.
func Trim(v any, opts Options) (any, Stats) {
	t := trimmer{opts: opts.withDefaults()}
	return t.value(v), t.stats
}

type trimmer struct {
	opts  Options
	stats Stats
}

func (t *trimmer) value(v any) any {
	switch val := v.(type) {
	case []any:
		return t.array(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = t.value(item)
		}
		return out
	case string:
		return t.string(val)
	default:
		return v
	}
}

func (t *trimmer) array(arr []any) []any {
	keep := len(arr)
	if t.opts.MaxRows > 0 && keep > t.opts.MaxRows {
		keep = t.opts.MaxRows
	}

	out := make([]any, keep, keep+1)
	for i := range keep {
		out[i] = t.value(arr[i])
	}
	if dropped := len(arr) - keep; dropped > 0 {
		t.stats.TrimmedArrays++
		t.stats.DroppedRows += dropped
		out = append(out, fmt.Sprintf("... (%d more rows)", dropped))
	}
	return out
}

func (t *trimmer) string(s string) string {
	if t.opts.MaxStringLen <= 0 || len(s) <= t.opts.MaxStringLen {
		return s
	}
	t.stats.TrimmedStrings++
	return s[:t.opts.MaxStringLen] + fmt.Sprintf("... (%d more chars)", len(s)-t.opts.MaxStringLen)
}
