package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/mcp/tools"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// Resource URI scheme: cognos://
// Supported URIs:
//   cognos://folder/{id}
//   cognos://report/{id}

const resourceScheme = "cognos://"

// folderResourceTypes are the entry types listed by the folder resource.
var folderResourceTypes = []client.ObjectType{
	client.TypeFolder,
	client.TypeReport,
	client.TypeReportView,
	client.TypeInteractive,
	client.TypeDashboard,
	client.TypeDataModule,
	client.TypeDataSet,
	client.TypePackage,
	client.TypeShortcut,
	client.TypeUploadFile,
}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "cognos://folder/{id}",
		Name:        "Cognos Folder",
		Description: "Every entry of one folder (folders, reports, dashboards, data modules, packages...) with id, name, type and search path. cognos_list_folder already filters by name and type; fetch this for the unfiltered content.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceFolder)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "cognos://report/{id}",
		Name:        "Cognos Report Data",
		Description: "DataSetJSON output of a report, up to 100 rows. High context cost - prefer cognos_report_data with a jq expression to extract only what you need.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceReport)
}

func (s *Server) handleResourceFolder(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	c, err := s.deps.Client(ctx, "")
	if err != nil {
		return nil, err
	}

	items, err := c.ListFolder(ctx, params["id"], &client.ListOptions{Types: folderResourceTypes})
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}

	content := map[string]any{
		"folder_id": params["id"],
		"entries":   items,
		"count":     len(items),
	}
	return toResourceResult(req.Params.URI, content)
}

func (s *Server) handleResourceReport(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	c, err := s.deps.Client(ctx, "")
	if err != nil {
		return nil, err
	}

	data, err := c.GetReportData(ctx, params["id"])
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}

// resourceError maps a missing object to the protocol's not-found error.
func resourceError(uri string, err error) error {
	coded := tools.WrapCognosError(err)
	if ce, ok := coded.(*tools.CodedError); ok && ce.Code == tools.ErrCodeNotFound {
		return sdkmcp.ResourceNotFoundError(uri)
	}
	return coded
}

// parseResourceURI extracts parameters from a cognos:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected cognos://")
	}

	path := strings.TrimPrefix(uri, resourceScheme)
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "folder", "report":
		if len(parts) != 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput(resourceType + " URI requires a store id")
		}
		id, err := url.PathUnescape(parts[1])
		if err != nil {
			return nil, tools.ErrInvalidInput(fmt.Sprintf("invalid store id %q", parts[1]))
		}
		params["id"] = id

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
