package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-connect/internal/connectors/google/gmail"
	"github.com/custodia-labs/sercha-connect/internal/connectors/stripe"
	"github.com/custodia-labs/sercha-connect/internal/connectors/twilio"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// defaultHistoryLimit caps connector_history when no limit is given.
const defaultHistoryLimit = 20

// ConnectorInput selects one connector.
type ConnectorInput struct {
	ConnectorID string `json:"connector_id" jsonschema:"the connector id, e.g. gmail or stripe"`
}

// ListConnectorsInput is the input schema for the list_connectors tool.
type ListConnectorsInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list connectors in this category"`
}

// ListConnectorsOutput is the output schema for the list_connectors tool.
type ListConnectorsOutput struct {
	Connectors []ConnectorOutput `json:"connectors"`
	Count      int               `json:"count"`
}

// ConnectorOutput is the summary of one registered connector.
type ConnectorOutput struct {
	ID           string `json:"connector_id"`
	Name         string `json:"connector_name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	AuthType     string `json:"auth_type"`
	RequiresAuth bool   `json:"requires_auth"`
	Enabled      bool   `json:"enabled"`
}

// StatusInput is the input schema for the connector_status tool.
type StatusInput struct {
	ConnectorID string `json:"connector_id,omitempty" jsonschema:"the connector id; omit to check every connector"`
}

// StatusOutput is the output schema for the connector_status tool.
type StatusOutput struct {
	Statuses []driving.StatusReport `json:"statuses"`
}

// ResourcesInput is the input schema for the list_resources tool.
type ResourcesInput struct {
	ConnectorID  string `json:"connector_id" jsonschema:"the connector id"`
	ResourceType string `json:"resource_type" jsonschema:"the resource type, e.g. messages, events, customers"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of resources to return"`
	Query        string `json:"query,omitempty" jsonschema:"provider search expression (Gmail)"`
	CalendarID   string `json:"calendar_id,omitempty" jsonschema:"calendar to list events from (default primary)"`
}

// HistoryInput is the input schema for the connector_history tool.
type HistoryInput struct {
	ConnectorID string `json:"connector_id" jsonschema:"the connector id"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of checks to return (default 20)"`
}

// HistoryOutput is the output schema for the connector_history tool.
type HistoryOutput struct {
	Checks []CheckOutput `json:"checks"`
}

// CheckOutput is one recorded status check.
type CheckOutput struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	CheckedAt string `json:"checked_at"`
}

// SendEmailInput is the input schema for the send_email tool.
type SendEmailInput struct {
	ConnectorID string `json:"connector_id,omitempty" jsonschema:"email connector id (default gmail)"`
	To          string `json:"to" jsonschema:"recipient address"`
	Subject     string `json:"subject" jsonschema:"message subject"`
	Body        string `json:"body" jsonschema:"plain text body"`
}

// SendWhatsAppInput is the input schema for the send_whatsapp tool.
type SendWhatsAppInput struct {
	ConnectorID string `json:"connector_id,omitempty" jsonschema:"WhatsApp connector id (default twilio_whatsapp)"`
	To          string `json:"to" jsonschema:"recipient phone number, with or without the whatsapp: prefix"`
	Body        string `json:"body" jsonschema:"message text"`
}

// PortalSessionInput is the input schema for the create_portal_session tool.
type PortalSessionInput struct {
	ConnectorID string `json:"connector_id,omitempty" jsonschema:"billing connector id (default stripe)"`
	CustomerID  string `json:"customer_id" jsonschema:"provider customer id"`
	ReturnURL   string `json:"return_url,omitempty" jsonschema:"where the portal sends the customer back to"`
}

// ResourceOutput wraps a provider resource.
type ResourceOutput struct {
	Resource domain.Resource `json:"resource"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_connectors",
		Description: "List registered connectors, optionally filtered by category",
	}, s.handleListConnectors)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "connector_status",
		Description: "Check the connection status of one or every connector",
	}, s.handleStatus)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "authorize_connector",
		Description: "Start authorization; returns a consent URL for OAuth connectors",
	}, s.handleAuthorize)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "test_connector",
		Description: "Probe a connector with one authenticated request",
	}, s.handleTest)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "revoke_connector",
		Description: "Revoke provider access and forget stored credentials",
	}, s.handleRevoke)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_resources",
		Description: "List provider resources such as messages, events or customers",
	}, s.handleResources)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_connector",
		Description: "Run the connector's sync routine",
	}, s.handleSync)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "connector_history",
		Description: "Show recent status checks of a connector",
	}, s.handleHistory)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "send_email",
		Description: "Send a plain text email",
	}, s.handleSendEmail)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "send_whatsapp",
		Description: "Send a WhatsApp message",
	}, s.handleSendWhatsApp)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_portal_session",
		Description: "Open a billing portal session for a customer",
	}, s.handlePortalSession)
}

func (s *Server) handleListConnectors(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListConnectorsInput,
) (*mcp.CallToolResult, ListConnectorsOutput, error) {
	configs := s.ports.Gateway.List(input.Category)

	output := ListConnectorsOutput{
		Connectors: make([]ConnectorOutput, len(configs)),
		Count:      len(configs),
	}
	for i, cfg := range configs {
		output.Connectors[i] = ConnectorOutput{
			ID:           cfg.ID,
			Name:         cfg.Name,
			Description:  cfg.Description,
			Category:     cfg.Category,
			AuthType:     string(cfg.AuthKind),
			RequiresAuth: cfg.RequiresAuth,
			Enabled:      cfg.Enabled,
		}
	}
	return nil, output, nil
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if input.ConnectorID == "" {
		return nil, StatusOutput{Statuses: s.ports.Gateway.StatusAll(ctx)}, nil
	}

	report, err := s.ports.Gateway.Status(ctx, input.ConnectorID)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Statuses: []driving.StatusReport{report}}, nil
}

func (s *Server) handleAuthorize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConnectorInput,
) (*mcp.CallToolResult, domain.AuthResult, error) {
	result, err := s.ports.Gateway.Authorize(ctx, input.ConnectorID)
	if err != nil {
		return nil, domain.AuthResult{}, err
	}
	return nil, result, nil
}

func (s *Server) handleTest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConnectorInput,
) (*mcp.CallToolResult, driving.ActionResult, error) {
	result, err := s.ports.Gateway.Test(ctx, input.ConnectorID)
	if err != nil {
		return nil, driving.ActionResult{}, err
	}
	return nil, result, nil
}

func (s *Server) handleRevoke(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConnectorInput,
) (*mcp.CallToolResult, driving.ActionResult, error) {
	result, err := s.ports.Gateway.Revoke(ctx, input.ConnectorID)
	if err != nil {
		return nil, driving.ActionResult{}, err
	}
	return nil, result, nil
}

func (s *Server) handleResources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResourcesInput,
) (*mcp.CallToolResult, driving.ResourceList, error) {
	opts := domain.ResourceOptions{
		Limit:      input.Limit,
		Query:      input.Query,
		CalendarID: input.CalendarID,
	}
	list, err := s.ports.Gateway.Resources(ctx, input.ConnectorID, input.ResourceType, opts)
	if err != nil {
		return nil, driving.ResourceList{}, err
	}
	return nil, list, nil
}

func (s *Server) handleSync(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConnectorInput,
) (*mcp.CallToolResult, domain.SyncResult, error) {
	result, err := s.ports.Gateway.Sync(ctx, input.ConnectorID, domain.ResourceOptions{})
	if err != nil {
		return nil, domain.SyncResult{}, err
	}
	return nil, result, nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.ports.Gateway.History(ctx, input.ConnectorID, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{Checks: make([]CheckOutput, len(records))}
	for i, rec := range records {
		output.Checks[i] = CheckOutput{
			Status:    string(rec.Status),
			Message:   rec.Message,
			CheckedAt: rec.CheckedAt.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func (s *Server) handleSendEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendEmailInput,
) (*mcp.CallToolResult, ResourceOutput, error) {
	id := orDefault(input.ConnectorID, gmail.ID)
	r, err := s.ports.Gateway.SendEmail(ctx, id, input.To, input.Subject, input.Body)
	if err != nil {
		return nil, ResourceOutput{}, err
	}
	return nil, ResourceOutput{Resource: r}, nil
}

func (s *Server) handleSendWhatsApp(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendWhatsAppInput,
) (*mcp.CallToolResult, ResourceOutput, error) {
	id := orDefault(input.ConnectorID, twilio.ID)
	r, err := s.ports.Gateway.SendWhatsApp(ctx, id, input.To, input.Body)
	if err != nil {
		return nil, ResourceOutput{}, err
	}
	return nil, ResourceOutput{Resource: r}, nil
}

func (s *Server) handlePortalSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PortalSessionInput,
) (*mcp.CallToolResult, ResourceOutput, error) {
	id := orDefault(input.ConnectorID, stripe.ID)
	r, err := s.ports.Gateway.CreatePortalSession(ctx, id, input.CustomerID, input.ReturnURL)
	if err != nil {
		return nil, ResourceOutput{}, err
	}
	return nil, ResourceOutput{Resource: r}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
