package tools

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type entryNode struct {
	ID       string       `json:"id"`
	Children []*entryNode `json:"children,omitempty"`
}

// checkPanic runs CheckOutputSchema[T] and returns its panic message.
func checkPanic[T any]() (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprint(r)
		}
	}()
	CheckOutputSchema[T]("test_tool")
	return ""
}

func TestCheckOutputSchema(t *testing.T) {
	tests := []struct {
		name  string
		check func() string
		want  string // substring of the panic message, "" for no panic
	}{
		{
			name: "nil slice without omitzero",
			check: checkPanic[struct {
				Entries []string `json:"entries"`
			}],
			want: "omitzero",
		},
		{
			name: "slice with omitzero",
			check: checkPanic[struct {
				Entries []string `json:"entries,omitzero"`
			}],
		},
		{
			name: "slice with omitempty",
			check: checkPanic[struct {
				Entries []string `json:"entries,omitempty"`
			}],
		},
		{
			name: "pointer to slice",
			check: checkPanic[struct {
				Entries *[]string `json:"entries"`
			}],
		},
		{
			name: "scalars only",
			check: checkPanic[struct {
				ID    string `json:"id"`
				Count int    `json:"count"`
			}],
		},
		{
			name:  "untyped any",
			check: checkPanic[any],
		},
		{
			name: "any slice",
			check: checkPanic[struct {
				Values []any `json:"values,omitzero"`
			}],
		},
		{
			name: "raw message",
			check: checkPanic[struct {
				Data json.RawMessage `json:"data,omitempty"`
			}],
			want: "json.RawMessage at Data",
		},
		{
			name: "raw message slice",
			check: checkPanic[struct {
				Rows []json.RawMessage `json:"rows,omitzero"`
			}],
			want: "json.RawMessage at Rows.[]",
		},
		{
			name: "nested raw message",
			check: checkPanic[struct {
				Report struct {
					Data json.RawMessage `json:"data,omitempty"`
				} `json:"report"`
			}],
			want: "json.RawMessage at Report.Data",
		},
		{
			name: "recursive tree",
			check: checkPanic[struct {
				Root *entryNode `json:"root,omitempty"`
			}],
			want: "recursive at Root.Children",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.check()
			if tt.want == "" {
				assert.Empty(t, msg)
				return
			}
			assert.Contains(t, msg, tt.want)
		})
	}
}

func TestCheckOutputSchema_CognosOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[SessionOutput]("cognos_session")
		CheckOutputSchema[LoginOutput]("cognos_login")
		CheckOutputSchema[LogoffOutput]("cognos_logoff")
		CheckOutputSchema[FolderListOutput]("cognos_list_folder")
		CheckOutputSchema[FolderTreeOutput]("cognos_folder_tree")
		CheckOutputSchema[AddFolderOutput]("cognos_add_folder")
		CheckOutputSchema[DeleteFolderOutput]("cognos_delete_folder")
		CheckOutputSchema[ReportDataOutput]("cognos_report_data")
	})
}
