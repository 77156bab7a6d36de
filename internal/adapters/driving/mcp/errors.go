// Package mcp provides an MCP (Model Context Protocol) server adapter for abacus.
// It lets AI assistants drive calculator sessions and read the history tape.
package mcp

import "errors"

// ErrMissingCalculatorService is returned when the calculator service is not provided.
var ErrMissingCalculatorService = errors.New("mcp: calculator service is required")

// ErrRateLimited is returned when tool calls arrive faster than mcp.rate_limit allows.
var ErrRateLimited = errors.New("mcp: rate limit exceeded, retry shortly")

// ErrNoKeys is returned when a tool that applies keys receives none.
var ErrNoKeys = errors.New("mcp: at least one key is required")
