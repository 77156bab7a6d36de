package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for abacus.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	limiter *rate.Limiter
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "abacus",
		Version: Version,
	}

	perSecond := rateLimit(ports)
	s := &Server{
		ports:   ports,
		server:  mcp.NewServer(impl, nil),
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// rateLimit reads mcp.rate_limit, falling back to the default.
func rateLimit(ports *Ports) int {
	if ports.Settings == nil {
		return domain.DefaultMCPRateLimit
	}
	settings, err := ports.Settings.Get()
	if err != nil {
		logger.Warn("mcp: loading settings: %v", err)
		return domain.DefaultMCPRateLimit
	}
	if settings.MCP.RateLimit <= 0 {
		return domain.DefaultMCPRateLimit
	}
	return settings.MCP.RateLimit
}

// allow consumes one token from the limiter.
func (s *Server) allow(tool string) error {
	if !s.limiter.Allow() {
		logger.Debug("mcp: %s rejected by rate limiter", tool)
		return ErrRateLimited
	}
	return nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler serving this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
