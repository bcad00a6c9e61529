package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ObjectType is the Cognos content store object type of an entry.
type ObjectType string

// Common content store object types. Unknown values pass through unchanged.
const (
	TypeFolder      ObjectType = "folder"
	TypeReport      ObjectType = "report"
	TypeDashboard   ObjectType = "exploration"
	TypeDataModule  ObjectType = "module"
	TypeDataSet     ObjectType = "dataSet2"
	TypePackage     ObjectType = "package"
	TypeShortcut    ObjectType = "shortcut"
	TypeReportView  ObjectType = "reportView"
	TypeUploadFile  ObjectType = "uploadedFile"
	TypeInteractive ObjectType = "interactiveReport"
)

// Synthetic names given to the two well-known root folders.
const (
	MyContentName   = "My Content"
	TeamContentName = "Team Content"
)

// FolderDescriptor is the projection of one content store entry returned by
// the listing operations. It is rebuilt on every call.
type FolderDescriptor struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Type       ObjectType `json:"type,omitempty" yaml:"type,omitempty"`
	SearchPath string     `json:"searchPath,omitempty" yaml:"searchPath,omitempty"`
}

// Capabilities describes how a Transport behaves for operations whose result
// depends on the runtime environment.
type Capabilities struct {
	// IDFromLocation reports that created object ids must be read from the
	// Location response header instead of the response body.
	IDFromLocation bool
	// SupportsPut reports that the transport can stream PUT uploads.
	SupportsPut bool
}

// Response is the full result of a transport call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// RawBody returns the body as a json.RawMessage, or nil when empty.
func (r *Response) RawBody() json.RawMessage {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	return json.RawMessage(r.Body)
}

// DeleteOptions controls DeleteFolder.
type DeleteOptions struct {
	Force     bool `json:"force"`
	Recursive bool `json:"recursive"`
}

// DefaultDeleteOptions returns force and recursive deletion, the API default.
func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{Force: true, Recursive: true}
}

// ListOptions filters the children returned by ListFolder.
type ListOptions struct {
	// Pattern is a shell glob matched against the display name. Empty means "*".
	Pattern string
	// Types lists the object types to keep. Empty means folders only.
	Types []ObjectType
	// CaseInsensitive folds case before matching Pattern.
	CaseInsensitive bool
}

func (o *ListOptions) pattern() string {
	if o == nil || o.Pattern == "" {
		return "*"
	}
	return o.Pattern
}

func (o *ListOptions) types() []ObjectType {
	if o == nil || len(o.Types) == 0 {
		return []ObjectType{TypeFolder}
	}
	return o.Types
}

// ParseObjectTypes converts a comma separated list ("folder,report") into
// object types, dropping blanks.
func ParseObjectTypes(s string) []ObjectType {
	var out []ObjectType
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, ObjectType(part))
		}
	}
	return out
}

// objectList is the envelope the objects API wraps every collection in.
type objectList struct {
	Data []json.RawMessage `json:"data"`
}

// objectRef is the minimal shape of a content store object.
type objectRef struct {
	ID string `json:"id"`
}

// loginParameter is one name/value pair of the CAM logon payload.
type loginParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type loginRequest struct {
	Parameters []loginParameter `json:"parameters"`
}

type createObjectRequest struct {
	DefaultName string     `json:"defaultName"`
	Type        ObjectType `json:"type"`
}
