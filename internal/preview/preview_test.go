package preview

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestTrim_DataTable(t *testing.T) {
	v := decode(t, `{"dataSet":{"dataTable":[{"r":1},{"r":2},{"r":3},{"r":4}]}}`)

	got, stats := Trim(v, Options{MaxRows: 2})

	rows := got.(map[string]any)["dataSet"].(map[string]any)["dataTable"].([]any)
	require.Len(t, rows, 3)
	assert.Equal(t, map[string]any{"r": float64(1)}, rows[0])
	assert.Equal(t, map[string]any{"r": float64(2)}, rows[1])
	assert.Equal(t, "... (2 more rows)", rows[2])
	assert.Equal(t, Stats{TrimmedArrays: 1, DroppedRows: 2}, stats)
	assert.True(t, stats.Trimmed())
}

func TestTrim_DoesNotModifyInput(t *testing.T) {
	v := decode(t, `[1,2,3,4,5,6,7]`)

	Trim(v, Options{MaxRows: 1})

	assert.Len(t, v.([]any), 7)
}

func TestTrim_NestedArrays(t *testing.T) {
	v := decode(t, `[[1,2,3],[4],[5,6,7,8]]`)

	got, stats := Trim(v, Options{MaxRows: 2})

	assert.Equal(t, []any{
		[]any{float64(1), float64(2), "... (1 more rows)"},
		[]any{float64(4)},
		"... (1 more rows)",
	}, got)
	assert.Equal(t, 2, stats.TrimmedArrays)
	assert.Equal(t, 2, stats.DroppedRows)
}

func TestTrim_Strings(t *testing.T) {
	got, stats := Trim(strings.Repeat("x", 12), Options{MaxStringLen: 10})

	assert.Equal(t, "xxxxxxxxxx... (2 more chars)", got)
	assert.Equal(t, 1, stats.TrimmedStrings)
}

func TestTrim_Defaults(t *testing.T) {
	rows := make([]any, DefaultMaxRows+3)
	for i := range rows {
		rows[i] = float64(i)
	}

	got, stats := Trim(rows, Options{})

	assert.Len(t, got.([]any), DefaultMaxRows+1)
	assert.Equal(t, 3, stats.DroppedRows)
}

func TestTrim_NegativeDisablesLimit(t *testing.T) {
	v := decode(t, `[1,2,3,4,5,6,7,8,9]`)

	got, stats := Trim(v, Options{MaxRows: -1, MaxStringLen: -1})

	assert.Len(t, got.([]any), 9)
	assert.False(t, stats.Trimmed())
}

func TestTrim_Scalars(t *testing.T) {
	for _, v := range []any{nil, true, float64(3), "short"} {
		got, stats := Trim(v, Options{})
		assert.Equal(t, v, got)
		assert.False(t, stats.Trimmed())
	}
}
