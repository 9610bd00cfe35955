package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for sercha-connect resources.
	uriScheme = "sercha-connect://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing connectors.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "connectors",
		Name:        "connectors",
		Description: "Configs of all registered connectors",
		MIMEType:    "application/json",
	}, s.handleConnectorsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "connectors/{connectorId}/status",
		Name:        "connector-status",
		Description: "Current status of a connector",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "connectors/{connectorId}/settings",
		Name:        "connector-settings",
		Description: "Settings a connector reads, secrets masked",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleConnectorsResource returns the configs of all registered connectors.
func (s *Server) handleConnectorsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.ports.Gateway.List(""))
}

// handleStatusResource recomputes the status of one connector.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractConnectorID(req.Params.URI, "/status")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report, err := s.ports.Gateway.Status(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking status: %w", err)
	}
	return jsonResult(req.Params.URI, report)
}

// handleSettingsResource returns a connector's resolved settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractConnectorID(req.Params.URI, "/settings")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	values, err := s.ports.Settings.Describe(id)
	if err != nil {
		return nil, fmt.Errorf("describing settings: %w", err)
	}
	return jsonResult(req.Params.URI, values)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractConnectorID extracts the id from a URI like
// sercha-connect://connectors/{connectorId}/status.
func extractConnectorID(uri, suffix string) string {
	const prefix = uriScheme + "connectors/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
