package walk

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/cognos-mcp/pkg/client"
)

// mapLister serves listings from a static folder map and filters by type the
// way the client does.
type mapLister struct {
	children map[string][]client.FolderDescriptor
	failures map[string]error
	delay    time.Duration

	mu       sync.Mutex
	listed   []string
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (l *mapLister) ListFolder(ctx context.Context, id string, opts *client.ListOptions) ([]client.FolderDescriptor, error) {
	cur := l.inFlight.Add(1)
	defer l.inFlight.Add(-1)
	for {
		p := l.peak.Load()
		if cur <= p || l.peak.CompareAndSwap(p, cur) {
			break
		}
	}

	l.mu.Lock()
	l.listed = append(l.listed, id)
	l.mu.Unlock()

	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := l.failures[id]; err != nil {
		return nil, err
	}

	var out []client.FolderDescriptor
	for _, d := range l.children[id] {
		if slices.Contains(opts.Types, d.Type) {
			out = append(out, d)
		}
	}
	return out, nil
}

func folder(id, name string) client.FolderDescriptor {
	return client.FolderDescriptor{ID: id, Name: name, Type: client.TypeFolder}
}

func report(id, name string) client.FolderDescriptor {
	return client.FolderDescriptor{ID: id, Name: name, Type: client.TypeReport}
}

func sampleLister() *mapLister {
	return &mapLister{
		children: map[string][]client.FolderDescriptor{
			"root":  {folder("sales", "Sales"), report("r0", "Overview"), folder("hr", "HR")},
			"sales": {folder("north", "North"), report("r1", "Pipeline")},
			"hr":    {report("r2", "Headcount")},
			"north": {report("r3", "Q1")},
		},
	}
}

func childIDs(n *Node) []string {
	ids := make([]string, len(n.Children))
	for i, c := range n.Children {
		ids[i] = c.ID
	}
	return ids
}

func TestWalk_DefaultDepthListsOneLevel(t *testing.T) {
	l := sampleLister()

	tree, err := Walk(context.Background(), l, "root", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales", "hr"}, childIDs(tree.Root))
	assert.Equal(t, []string{"root"}, l.listed)
	for _, c := range tree.Root.Children {
		assert.True(t, c.Truncated)
	}
}

func TestWalk_DepthAndOrder(t *testing.T) {
	l := sampleLister()

	tree, err := Walk(context.Background(), l, "root", Options{
		Depth: 3,
		Types: []client.ObjectType{client.TypeReport},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sales", "r0", "hr"}, childIDs(tree.Root))
	sales := tree.Root.Children[0]
	assert.Equal(t, []string{"north", "r1"}, childIDs(sales))
	assert.Equal(t, []string{"r3"}, childIDs(sales.Children[0]))
	assert.False(t, sales.Children[0].Truncated)

	assert.Equal(t, 3, tree.Folders)
	assert.Equal(t, 4, tree.Entries)
	assert.Zero(t, tree.Failed)
}

func TestWalk_DepthLimitMarksTruncated(t *testing.T) {
	l := sampleLister()

	tree, err := Walk(context.Background(), l, "root", Options{Depth: 2})
	require.NoError(t, err)

	north := tree.Root.Children[0].Children[0]
	assert.Equal(t, "north", north.ID)
	assert.True(t, north.Truncated)
	assert.Empty(t, north.Children)
	assert.NotContains(t, l.listed, "north")
}

func TestWalk_SubtreeFailureIsRecorded(t *testing.T) {
	l := sampleLister()
	l.failures = map[string]error{"sales": errors.New("cognos API error 403: denied")}

	tree, err := Walk(context.Background(), l, "root", Options{Depth: 3})
	require.NoError(t, err)

	sales := tree.Root.Children[0]
	assert.Equal(t, "cognos API error 403: denied", sales.Error)
	assert.Empty(t, sales.Children)
	assert.Equal(t, 1, tree.Failed)

	hr := tree.Root.Children[1]
	assert.Empty(t, hr.Error)
}

func TestWalk_RootFailureFailsWalk(t *testing.T) {
	l := sampleLister()
	rootErr := errors.New("connection refused")
	l.failures = map[string]error{"root": rootErr}

	tree, err := Walk(context.Background(), l, "root", Options{Depth: 2})
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, rootErr)
}

func TestWalk_WorkersBoundConcurrency(t *testing.T) {
	l := &mapLister{children: map[string][]client.FolderDescriptor{}, delay: 5 * time.Millisecond}
	for i := range 12 {
		id := string(rune('a' + i))
		l.children["root"] = append(l.children["root"], folder(id, id))
	}

	tree, err := Walk(context.Background(), l, "root", Options{Depth: 2, Workers: 3})
	require.NoError(t, err)
	assert.Len(t, tree.Root.Children, 12)
	assert.LessOrEqual(t, l.peak.Load(), int32(3))
	assert.Len(t, l.listed, 13)
}

func TestWalk_CancelledContext(t *testing.T) {
	l := sampleLister()
	l.delay = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := Walk(ctx, l, "root", Options{Depth: 3})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNode_Visit(t *testing.T) {
	l := sampleLister()
	tree, err := Walk(context.Background(), l, "root", Options{Depth: 3, Types: []client.ObjectType{client.TypeReport}})
	require.NoError(t, err)

	var visited []string
	var depths []int
	tree.Root.Visit(func(n *Node, depth int) {
		visited = append(visited, n.ID)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"root", "sales", "north", "r3", "r1", "r0", "hr", "r2"}, visited)
	assert.Equal(t, []int{0, 1, 2, 3, 2, 1, 1, 2}, depths)
}
