package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// ListRootFolder returns the two well-known roots that exist: the caller's
// private folder as "My Content", then the public folder as "Team Content".
// The public root is fetched only after the private one so the order is fixed.
func (c *Client) ListRootFolder(ctx context.Context) ([]FolderDescriptor, error) {
	roots := make([]FolderDescriptor, 0, 2)

	id, ok, err := c.rootFolderID(ctx, myFoldersPath)
	if err != nil {
		return nil, fmt.Errorf("listing root folder: %w", err)
	}
	if ok {
		c.trace(ctx, "got the private folders")
		roots = append(roots, FolderDescriptor{ID: id, Name: MyContentName, Type: TypeFolder})
	}

	id, ok, err = c.rootFolderID(ctx, publicFoldersPath)
	if err != nil {
		return nil, fmt.Errorf("listing root folder: %w", err)
	}
	if ok {
		c.trace(ctx, "got the public folders")
		roots = append(roots, FolderDescriptor{ID: id, Name: TeamContentName, Type: TypeFolder})
	}

	return roots, nil
}

// ListPublicFolders lists the folders directly under Team Content. It returns
// an empty slice when the server has no public root.
func (c *Client) ListPublicFolders(ctx context.Context) ([]FolderDescriptor, error) {
	id, ok, err := c.rootFolderID(ctx, publicFoldersPath)
	if err != nil {
		return nil, fmt.Errorf("listing public folders: %w", err)
	}
	if !ok {
		return []FolderDescriptor{}, nil
	}
	return c.ListFolderByID(ctx, id, "*", TypeFolder)
}

// rootFolderID resolves a well-known root object. ok is false when the API
// returned no object for it, or one without an id.
func (c *Client) rootFolderID(ctx context.Context, path string) (id string, ok bool, err error) {
	resp, err := c.transport.Get(ctx, path, url.Values{"fields": {"permissions"}})
	if err != nil {
		return "", false, err
	}

	var list objectList
	if err := resp.Decode(&list); err != nil {
		return "", false, err
	}
	if len(list.Data) == 0 {
		return "", false, nil
	}

	var ref objectRef
	if err := json.Unmarshal(list.Data[0], &ref); err != nil {
		return "", false, fmt.Errorf("decoding %s: %w", path, err)
	}
	if ref.ID == "" {
		c.trace(ctx, "root object without id, skipping", slog.String("path", path))
		return "", false, nil
	}
	return ref.ID, true, nil
}

// AddFolder creates a folder named name under parentID. It returns nil, after
// logging, when the folder could not be created or its id not determined.
func (c *Client) AddFolder(ctx context.Context, parentID, name string) *FolderDescriptor {
	attrs := []slog.Attr{
		slog.String("parent_id", parentID),
		slog.String("name", name),
	}

	resp, err := c.transport.Post(ctx, itemsPath(parentID), createObjectRequest{
		DefaultName: name,
		Type:        TypeFolder,
	})
	if err != nil {
		c.warn(ctx, "creating folder failed", err, attrs...)
		return nil
	}

	id, err := c.createdID(resp)
	if err != nil {
		c.warn(ctx, "reading created folder id failed", err, attrs...)
		return nil
	}

	c.trace(ctx, "created folder", append(attrs, slog.String("id", id))...)
	return &FolderDescriptor{ID: id, Name: name, Type: TypeFolder}
}

// createdID extracts the id of a newly created object, from the Location
// header or from the body depending on the transport capabilities.
func (c *Client) createdID(resp *Response) (string, error) {
	if c.transport.Capabilities().IDFromLocation {
		return idFromLocation(resp.Header.Get("Location"))
	}

	var list objectList
	if err := resp.Decode(&list); err != nil {
		return "", err
	}
	if len(list.Data) == 0 {
		return "", errors.New("response body lists no created object")
	}
	var ref objectRef
	if err := json.Unmarshal(list.Data[0], &ref); err != nil {
		return "", fmt.Errorf("decoding created object: %w", err)
	}
	if ref.ID == "" {
		return "", errors.New("created object has no id")
	}
	return ref.ID, nil
}

// idFromLocation returns the last path segment of a Location header value.
func idFromLocation(location string) (string, error) {
	if location == "" {
		return "", ErrNoLocation
	}
	p := location
	if u, err := url.Parse(location); err == nil {
		p = u.EscapedPath()
	}
	seg := p[strings.LastIndex(p, "/")+1:]
	id, err := url.PathUnescape(seg)
	if err != nil {
		return "", fmt.Errorf("decoding Location %q: %w", location, err)
	}
	if id == "" {
		return "", fmt.Errorf("location %q has no id segment", location)
	}
	return id, nil
}

// DeleteFolder deletes the object id. A nil opts deletes with force and
// recursion, which also removes the folder's content. It returns false,
// after logging, when the deletion failed.
func (c *Client) DeleteFolder(ctx context.Context, id string, opts *DeleteOptions) bool {
	if opts == nil {
		opts = DefaultDeleteOptions()
	}

	if _, err := c.transport.Delete(ctx, objectPath(id), opts); err != nil {
		c.warn(ctx, "deleting folder failed", err, slog.String("id", id))
		return false
	}

	c.trace(ctx, "deleted folder", slog.String("id", id))
	return true
}
