package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// NewSessionInput is the input schema for the new_session tool.
type NewSessionInput struct{}

// NewSessionOutput is the output schema for the new_session tool.
type NewSessionOutput struct {
	SessionID string `json:"session_id"`
	Display   string `json:"display"`
}

// PressInput is the input schema for the press tool.
type PressInput struct {
	SessionID string `json:"session_id" jsonschema:"session returned by new_session"`
	Keys      string `json:"keys" jsonschema:"keys to press in order, e.g. 12.5 + 3 ="`
}

// EvaluateInput is the input schema for the evaluate tool.
type EvaluateInput struct {
	Keys string `json:"keys" jsonschema:"keys to press on a fresh calculator, e.g. 2 + 3 * 4 ="`
}

// SnapshotOutput is what the calculator shows after a tool call.
type SnapshotOutput struct {
	Display    string `json:"display"`
	Expression string `json:"expression,omitempty"`
	IsError    bool   `json:"is_error"`
	ErrorKind  string `json:"error_kind,omitempty"`
}

// SessionInput is the input schema for tools addressing one session.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"session returned by new_session"`
}

// DisplayOutput is the output schema for the display tool.
type DisplayOutput struct {
	Display string `json:"display"`
}

// CloseSessionOutput is the output schema for the close_session tool.
type CloseSessionOutput struct {
	Closed bool `json:"closed"`
}

// HistoryInput is the input schema for the history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return, defaults to the configured history limit"`
}

// HistoryOutput is the output schema for the history tool.
type HistoryOutput struct {
	Entries []HistoryEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// HistoryEntryOutput represents a single completed calculation.
type HistoryEntryOutput struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id,omitempty"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	CreatedAt  string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "new_session",
		Description: "Start a calculator session showing 0",
	}, s.handleNewSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "press",
		Description: "Press keys on a calculator session and return its display",
	}, s.handlePress)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "display",
		Description: "Read the display of a calculator session",
	}, s.handleDisplay)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "close_session",
		Description: "Discard a calculator session",
	}, s.handleCloseSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "evaluate",
		Description: "Press keys on a fresh calculator and return the final display",
	}, s.handleEvaluate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "history",
		Description: "List completed calculations, newest first",
	}, s.handleHistory)
}

func (s *Server) handleNewSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NewSessionInput,
) (*mcp.CallToolResult, NewSessionOutput, error) {
	if err := s.allow("new_session"); err != nil {
		return nil, NewSessionOutput{}, err
	}

	id, err := s.ports.Calculator.NewSession(ctx)
	if err != nil {
		return nil, NewSessionOutput{}, err
	}
	return nil, NewSessionOutput{SessionID: id, Display: domain.InitialDisplay}, nil
}

func (s *Server) handlePress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PressInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	if err := s.allow("press"); err != nil {
		return nil, SnapshotOutput{}, err
	}

	events, err := parseKeys(input.Keys)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}

	var snap domain.Snapshot
	for _, ev := range events {
		snap, err = s.ports.Calculator.Press(ctx, input.SessionID, ev)
		if err != nil {
			return nil, SnapshotOutput{}, fmt.Errorf("pressing %s: %w", ev.Label(), err)
		}
	}
	return nil, toSnapshotOutput(snap), nil
}

func (s *Server) handleDisplay(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, DisplayOutput, error) {
	if err := s.allow("display"); err != nil {
		return nil, DisplayOutput{}, err
	}

	display, err := s.ports.Calculator.Display(ctx, input.SessionID)
	if err != nil {
		return nil, DisplayOutput{}, err
	}
	return nil, DisplayOutput{Display: display}, nil
}

func (s *Server) handleCloseSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, CloseSessionOutput, error) {
	if err := s.allow("close_session"); err != nil {
		return nil, CloseSessionOutput{}, err
	}

	if err := s.ports.Calculator.CloseSession(ctx, input.SessionID); err != nil {
		return nil, CloseSessionOutput{}, err
	}
	return nil, CloseSessionOutput{Closed: true}, nil
}

func (s *Server) handleEvaluate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, SnapshotOutput, error) {
	if err := s.allow("evaluate"); err != nil {
		return nil, SnapshotOutput{}, err
	}

	events, err := parseKeys(input.Keys)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}

	snap, err := s.ports.Calculator.Evaluate(ctx, events)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}
	return nil, toSnapshotOutput(snap), nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if err := s.allow("history"); err != nil {
		return nil, HistoryOutput{}, err
	}
	if s.ports.History == nil {
		return nil, HistoryOutput{Entries: []HistoryEntryOutput{}}, nil
	}

	// Zero lets the service apply the configured history.limit.
	limit := max(input.Limit, 0)

	entries, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Entries: toHistoryOutputs(entries),
		Count:   len(entries),
	}
	return nil, output, nil
}

func parseKeys(keys string) ([]domain.InputEvent, error) {
	if strings.TrimSpace(keys) == "" {
		return nil, ErrNoKeys
	}
	return domain.ParseKeys(keys)
}

func toSnapshotOutput(snap domain.Snapshot) SnapshotOutput {
	return SnapshotOutput{
		Display:    snap.Display,
		Expression: snap.Expression,
		IsError:    snap.IsError,
		ErrorKind:  string(snap.ErrorKind),
	}
}

func toHistoryOutputs(entries []domain.HistoryEntry) []HistoryEntryOutput {
	out := make([]HistoryEntryOutput, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryOutput{
			ID:         e.ID,
			SessionID:  e.SessionID,
			Expression: e.Expression,
			Result:     e.Result,
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}
