package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/cases"
)

// folderItem is a child record as returned by the objects items resource.
type folderItem struct {
	ID          string `json:"id" jsonschema:"minLength=1"`
	DefaultName string `json:"defaultName"`
	Type        string `json:"type" jsonschema:"minLength=1"`
	SearchPath  string `json:"searchPath,omitempty"`
}

// folderItemSchema is compiled once from the folderItem struct.
var folderItemSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	r := &invopop.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(r.Reflect(&folderItem{}))
	if err != nil {
		return nil, fmt.Errorf("marshaling folder item schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling folder item schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("folder-item.json", doc); err != nil {
		return nil, fmt.Errorf("adding folder item schema: %w", err)
	}
	return compiler.Compile("folder-item.json")
})

// projectItem validates one raw child record and decodes it.
func projectItem(raw json.RawMessage) (*folderItem, error) {
	schema, err := folderItemSchema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	var item folderItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// matcher tests display names against a shell glob: "*" matches any run of
// characters, "?" a single character, "[...]" a character class ("[!...]" or
// "[^...]" negated) and "{a,b}" either alternative. As in the shell, a name
// starting with "." only matches a pattern that starts with ".".
type matcher struct {
	pattern string
	fold    *cases.Caser
}

func newMatcher(pattern string, caseInsensitive bool) (*matcher, error) {
	m := &matcher{pattern: pattern}
	if caseInsensitive {
		caser := cases.Fold()
		m.fold = &caser
		m.pattern = caser.String(pattern)
	}
	if !doublestar.ValidatePattern(m.pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return m, nil
}

func (m *matcher) Match(name string) bool {
	if m.fold != nil {
		name = m.fold.String(name)
	}
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(m.pattern, ".") {
		return false
	}
	ok, _ := doublestar.Match(m.pattern, name)
	return ok
}

// ListFolderByID lists one level of the folder id, keeping children whose
// display name matches pattern and whose type is one of types. An empty
// pattern means "*" and no types means folders only.
func (c *Client) ListFolderByID(ctx context.Context, id, pattern string, types ...ObjectType) ([]FolderDescriptor, error) {
	return c.ListFolder(ctx, id, &ListOptions{Pattern: pattern, Types: types})
}

// ListFolder lists one level of the folder id filtered by opts. Children are
// returned in the order the API sent them. A child that cannot be projected
// is logged and skipped; it never fails the listing.
func (c *Client) ListFolder(ctx context.Context, id string, opts *ListOptions) ([]FolderDescriptor, error) {
	m, err := newMatcher(opts.pattern(), opts != nil && opts.CaseInsensitive)
	if err != nil {
		return nil, err
	}
	types := opts.types()

	query := url.Values{
		"nav_filter": {"true"},
		"fields":     {"defaultName,defaultScreenTip,searchPath"},
	}
	resp, err := c.transport.Get(ctx, itemsPath(id), query)
	if err != nil {
		return nil, fmt.Errorf("listing folder %q: %w", id, err)
	}

	var list objectList
	if err := resp.Decode(&list); err != nil {
		return nil, fmt.Errorf("listing folder %q: %w", id, err)
	}

	result := make([]FolderDescriptor, 0, len(list.Data))
	for i, raw := range list.Data {
		item, err := projectItem(raw)
		if err != nil {
			c.warn(ctx, "skipping malformed entry", &EntryProjectionError{FolderID: id, Index: i, Err: err})
			continue
		}
		if !m.Match(item.DefaultName) || !slices.Contains(types, ObjectType(item.Type)) {
			continue
		}

		c.trace(ctx, "matched entry",
			slog.String("name", item.DefaultName),
			slog.String("type", item.Type),
		)
		result = append(result, FolderDescriptor{
			ID:         item.ID,
			Name:       item.DefaultName,
			Type:       ObjectType(item.Type),
			SearchPath: item.SearchPath,
		})
	}

	return result, nil
}
