package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/walk"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// maxTreeDepth caps cognos_folder_tree regardless of input.
const maxTreeDepth = 10

// FolderInfo is one content store entry.
type FolderInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	SearchPath string `json:"search_path,omitempty"`
}

func toFolderInfos(descs []client.FolderDescriptor) []FolderInfo {
	out := make([]FolderInfo, len(descs))
	for i, d := range descs {
		out[i] = FolderInfo{ID: d.ID, Name: d.Name, Type: string(d.Type), SearchPath: d.SearchPath}
	}
	return out
}

// FolderListOutput is the output of the listing tools.
type FolderListOutput struct {
	Folders []FolderInfo `json:"folders,omitzero"`
	Count   int          `json:"count"`
}

func newFolderListOutput(descs []client.FolderDescriptor) FolderListOutput {
	return FolderListOutput{Folders: toFolderInfos(descs), Count: len(descs)}
}

// ListRootInput is the input for cognos_list_root.
type ListRootInput struct {
	Endpoint string `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
}

// ListFolderInput is the input for cognos_list_folder.
type ListFolderInput struct {
	Endpoint   string   `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
	FolderID   string   `json:"folder_id" jsonschema:"Store id of the folder to list (from cognos_list_root or a previous listing)"`
	Pattern    string   `json:"pattern,omitempty" jsonschema:"Shell glob matched against entry names: * any run, ? one character, [a-z] a class (default: *)"`
	Types      []string `json:"types,omitempty" jsonschema:"Object types to keep such as folder, report, exploration, module, package (default: folder)"`
	IgnoreCase bool     `json:"ignore_case,omitempty" jsonschema:"Match pattern case-insensitively"`
}

// ListPublicFoldersInput is the input for cognos_list_public_folders.
type ListPublicFoldersInput struct {
	Endpoint string `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
}

// FolderTreeInput is the input for cognos_folder_tree.
type FolderTreeInput struct {
	Endpoint   string   `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
	FolderID   string   `json:"folder_id" jsonschema:"Store id of the folder to walk"`
	Depth      int      `json:"depth,omitempty" jsonschema:"Levels to list below the folder (default: TREE_MAX_DEPTH, max 10)"`
	Pattern    string   `json:"pattern,omitempty" jsonschema:"Shell glob matched against every entry name, folders included"`
	Types      []string `json:"types,omitempty" jsonschema:"Non-folder object types to include (folders are always included)"`
	IgnoreCase bool     `json:"ignore_case,omitempty" jsonschema:"Match pattern case-insensitively"`
}

// TreeEntry is one node of a walked folder tree, flattened depth first.
type TreeEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Path      string `json:"path"`
	Depth     int    `json:"depth"`
	ParentID  string `json:"parent_id"`
	Error     string `json:"error,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// FolderTreeOutput is the output for cognos_folder_tree.
type FolderTreeOutput struct {
	RootID  string      `json:"root_id"`
	Entries []TreeEntry `json:"entries,omitzero"`
	Folders int         `json:"folders"`
	Items   int         `json:"items"`
	Failed  int         `json:"failed,omitempty"`
}

// AddFolderInput is the input for cognos_add_folder.
type AddFolderInput struct {
	Endpoint string `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
	ParentID string `json:"parent_id" jsonschema:"Store id of the folder to create the new folder in"`
	Name     string `json:"name" jsonschema:"Name of the new folder"`
}

// AddFolderOutput is the output for cognos_add_folder.
type AddFolderOutput struct {
	OK     bool        `json:"ok"`
	Folder *FolderInfo `json:"folder,omitempty"`
}

// DeleteFolderInput is the input for cognos_delete_folder.
type DeleteFolderInput struct {
	Endpoint  string `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
	FolderID  string `json:"folder_id" jsonschema:"Store id of the object to delete"`
	Force     *bool  `json:"force,omitempty" jsonschema:"Delete even when the object is referenced (default: true)"`
	Recursive *bool  `json:"recursive,omitempty" jsonschema:"Delete the folder content too (default: true)"`
}

// DeleteFolderOutput is the output for cognos_delete_folder.
type DeleteFolderOutput struct {
	OK bool `json:"ok"`
}

// ToolListRoot lists the My Content and Team Content roots.
func ToolListRoot(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRootInput) (*sdkmcp.CallToolResult, FolderListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRootInput) (*sdkmcp.CallToolResult, FolderListOutput, error) {
		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, FolderListOutput{}, err
		}

		roots, err := c.ListRootFolder(ctx)
		if err != nil {
			return nil, FolderListOutput{}, WrapCognosError(err)
		}
		return nil, newFolderListOutput(roots), nil
	}
}

// ToolListFolder lists one level of a folder.
func ToolListFolder(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListFolderInput) (*sdkmcp.CallToolResult, FolderListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListFolderInput) (*sdkmcp.CallToolResult, FolderListOutput, error) {
		if input.FolderID == "" {
			return nil, FolderListOutput{}, ErrInvalidInput("folder_id is required")
		}

		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, FolderListOutput{}, err
		}

		items, err := c.ListFolder(ctx, input.FolderID, &client.ListOptions{
			Pattern:         input.Pattern,
			Types:           parseTypes(input.Types),
			CaseInsensitive: input.IgnoreCase,
		})
		if err != nil {
			return nil, FolderListOutput{}, WrapCognosError(err)
		}
		return nil, newFolderListOutput(items), nil
	}
}

// ToolListPublicFolders lists the folders directly under Team Content.
func ToolListPublicFolders(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListPublicFoldersInput) (*sdkmcp.CallToolResult, FolderListOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListPublicFoldersInput) (*sdkmcp.CallToolResult, FolderListOutput, error) {
		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, FolderListOutput{}, err
		}

		folders, err := c.ListPublicFolders(ctx)
		if err != nil {
			return nil, FolderListOutput{}, WrapCognosError(err)
		}
		return nil, newFolderListOutput(folders), nil
	}
}

// ToolFolderTree walks several levels below a folder.
func ToolFolderTree(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FolderTreeInput) (*sdkmcp.CallToolResult, FolderTreeOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FolderTreeInput) (*sdkmcp.CallToolResult, FolderTreeOutput, error) {
		if input.FolderID == "" {
			return nil, FolderTreeOutput{}, ErrInvalidInput("folder_id is required")
		}

		depth := input.Depth
		if depth <= 0 {
			depth = d.Config.TreeMaxDepth
		}
		depth = min(depth, maxTreeDepth)

		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, FolderTreeOutput{}, err
		}

		tree, err := walk.Walk(ctx, c, input.FolderID, walk.Options{
			Depth:           depth,
			Pattern:         input.Pattern,
			Types:           parseTypes(input.Types),
			CaseInsensitive: input.IgnoreCase,
			Workers:         d.Config.TreeFetchWorkers,
		})
		if err != nil {
			return nil, FolderTreeOutput{}, WrapCognosError(err)
		}

		return nil, flattenTree(tree), nil
	}
}

// flattenTree lists the nodes below the root depth first with their name path.
func flattenTree(tree *walk.Tree) FolderTreeOutput {
	output := FolderTreeOutput{
		RootID:  tree.Root.ID,
		Folders: tree.Folders,
		Items:   tree.Entries,
		Failed:  tree.Failed,
	}

	var visit func(n *walk.Node, parentPath string, depth int)
	visit = func(n *walk.Node, parentPath string, depth int) {
		for _, c := range n.Children {
			p := parentPath + "/" + c.Name
			output.Entries = append(output.Entries, TreeEntry{
				ID:        c.ID,
				Name:      c.Name,
				Type:      string(c.Type),
				Path:      p,
				Depth:     depth,
				ParentID:  n.ID,
				Error:     c.Error,
				Truncated: c.Truncated,
			})
			visit(c, p, depth+1)
		}
	}
	visit(tree.Root, "", 1)
	return output
}

// ToolAddFolder creates a folder. Failures are reported as ok=false.
func ToolAddFolder(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AddFolderInput) (*sdkmcp.CallToolResult, AddFolderOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AddFolderInput) (*sdkmcp.CallToolResult, AddFolderOutput, error) {
		if input.ParentID == "" || strings.TrimSpace(input.Name) == "" {
			return nil, AddFolderOutput{}, ErrInvalidInput("parent_id and name are required")
		}

		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, AddFolderOutput{}, err
		}

		created := c.AddFolder(ctx, input.ParentID, input.Name)
		if created == nil {
			return nil, AddFolderOutput{OK: false}, nil
		}
		info := toFolderInfos([]client.FolderDescriptor{*created})[0]
		return nil, AddFolderOutput{OK: true, Folder: &info}, nil
	}
}

// ToolDeleteFolder deletes an object. Failures are reported as ok=false.
func ToolDeleteFolder(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DeleteFolderInput) (*sdkmcp.CallToolResult, DeleteFolderOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DeleteFolderInput) (*sdkmcp.CallToolResult, DeleteFolderOutput, error) {
		if input.FolderID == "" {
			return nil, DeleteFolderOutput{}, ErrInvalidInput("folder_id is required")
		}

		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, DeleteFolderOutput{}, err
		}

		opts := client.DefaultDeleteOptions()
		if input.Force != nil {
			opts.Force = *input.Force
		}
		if input.Recursive != nil {
			opts.Recursive = *input.Recursive
		}
		return nil, DeleteFolderOutput{OK: c.DeleteFolder(ctx, input.FolderID, opts)}, nil
	}
}

func parseTypes(types []string) []client.ObjectType {
	var out []client.ObjectType
	for _, t := range types {
		out = append(out, client.ParseObjectTypes(t)...)
	}
	return out
}
