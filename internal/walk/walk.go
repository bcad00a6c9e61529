// Package walk builds multi-level folder trees by chaining single-level
// listings. Each level is fetched concurrently; a folder whose listing fails
// is kept in the tree with its error instead of failing the walk.
package walk

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/cognos-mcp/pkg/client"
)

// Walk defaults.
const (
	DefaultDepth   = 1
	DefaultWorkers = 4
)

// Lister lists one level of a folder. *client.Client satisfies it.
type Lister interface {
	ListFolder(ctx context.Context, id string, opts *client.ListOptions) ([]client.FolderDescriptor, error)
}

// Options controls a walk.
type Options struct {
	// Depth is the number of levels listed below the root. Values below 1 mean 1.
	Depth int
	// Pattern is matched against the name of every entry, folders included.
	Pattern string
	// Types selects the non-folder entries to include. Folders are always
	// included since they carry the tree.
	Types []client.ObjectType
	// CaseInsensitive folds case before matching Pattern.
	CaseInsensitive bool
	// Workers bounds concurrent listings within a level.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.Depth < 1 {
		o.Depth = DefaultDepth
	}
	if o.Workers < 1 {
		o.Workers = DefaultWorkers
	}
	if !slices.Contains(o.Types, client.TypeFolder) {
		o.Types = append(slices.Clone(o.Types), client.TypeFolder)
	}
	return o
}

// Node is one entry of a walked tree.
type Node struct {
	client.FolderDescriptor `yaml:",inline"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
	// Error is set when listing this folder failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Truncated is set on folders left unlisted because the depth limit was reached.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// IsFolder reports whether the node can have children.
func (n *Node) IsFolder() bool {
	return n.Type == client.TypeFolder
}

// Visit calls fn for n and its descendants, depth first in listing order.
// The root is visited at depth 0.
func (n *Node) Visit(fn func(n *Node, depth int)) {
	n.visit(fn, 0)
}

func (n *Node) visit(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.visit(fn, depth+1)
	}
}

// Tree is the result of a walk.
type Tree struct {
	Root    *Node `json:"root"`
	Folders int   `json:"folders"`
	Entries int   `json:"entries"`
	Failed  int   `json:"failed,omitempty"`
}

// Walk lists rootID and, level by level, every folder found below it down to
// opts.Depth levels. Children keep the order the server returned them in.
// An error listing the root, or a cancelled context, fails the walk.
func Walk(ctx context.Context, l Lister, rootID string, opts Options) (*Tree, error) {
	start := time.Now()
	opts = opts.withDefaults()
	listOpts := &client.ListOptions{
		Pattern:         opts.Pattern,
		Types:           opts.Types,
		CaseInsensitive: opts.CaseInsensitive,
	}

	children, err := l.ListFolder(ctx, rootID, listOpts)
	if err != nil {
		return nil, fmt.Errorf("walking folder %q: %w", rootID, err)
	}

	root := &Node{FolderDescriptor: client.FolderDescriptor{ID: rootID, Type: client.TypeFolder}}
	root.Children = toNodes(children)

	frontier := folders(root.Children)
	for level := 2; level <= opts.Depth && len(frontier) > 0; level++ {
		if err := expand(ctx, l, frontier, listOpts, opts.Workers); err != nil {
			return nil, fmt.Errorf("walking folder %q: %w", rootID, err)
		}

		var next []*Node
		for _, n := range frontier {
			next = append(next, folders(n.Children)...)
		}
		frontier = next
	}
	for _, n := range frontier {
		n.Truncated = true
	}

	tree := &Tree{Root: root}
	root.Visit(func(n *Node, depth int) {
		if depth == 0 {
			return
		}
		if n.IsFolder() {
			tree.Folders++
		} else {
			tree.Entries++
		}
		if n.Error != "" {
			tree.Failed++
		}
	})

	slog.Debug("folder walk completed",
		slog.String("root_id", rootID),
		slog.Int("depth", opts.Depth),
		slog.Int("folders", tree.Folders),
		slog.Int("entries", tree.Entries),
		slog.Int("failed", tree.Failed),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return tree, nil
}

// expand lists every node of one level with at most workers listings in
// flight. Listing failures are recorded on the node.
func expand(ctx context.Context, l Lister, nodes []*Node, opts *client.ListOptions, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, n := range nodes {
		g.Go(func() error {
			children, err := l.ListFolder(gctx, n.ID, opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("failed to list folder",
					slog.String("folder_id", n.ID),
					slog.String("name", n.Name),
					slog.String("error", err.Error()),
				)
				n.Error = err.Error()
				return nil
			}
			n.Children = toNodes(children)
			return nil
		})
	}

	return g.Wait()
}

func toNodes(descs []client.FolderDescriptor) []*Node {
	nodes := make([]*Node, len(descs))
	for i, d := range descs {
		nodes[i] = &Node{FolderDescriptor: d}
	}
	return nodes
}

func folders(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.IsFolder() {
			out = append(out, n)
		}
	}
	return out
}
