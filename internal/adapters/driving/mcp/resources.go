package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for abacus resources.
	uriScheme = "abacus://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Completed calculations, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{entryId}",
		Name:        "history-entry",
		Description: "A single completed calculation",
		MIMEType:    "application/json",
	}, s.handleHistoryEntryResource)
}

// handleHistoryResource returns the whole history tape.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, []HistoryEntryOutput{})
	}

	entries, err := s.ports.History.List(ctx, 0)
	if errors.Is(err, domain.ErrHistoryDisabled) {
		return jsonResource(req.Params.URI, []HistoryEntryOutput{})
	}
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	return jsonResource(req.Params.URI, toHistoryOutputs(entries))
}

// handleHistoryEntryResource returns one history entry.
func (s *Server) handleHistoryEntryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractEntryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entry, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting history entry: %w", err)
	}

	return jsonResource(req.Params.URI, toHistoryOutputs([]domain.HistoryEntry{*entry})[0])
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractEntryID extracts the entry ID from a URI like abacus://history/{entryId}.
func extractEntryID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
