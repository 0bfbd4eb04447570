package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/bryanchriswhite/WindowScout/internal/window"
)

const (
	ServerName    = "windowscout"
	ServerVersion = "0.1.0"
)

// Server exposes window discovery as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	windowMgr *window.Manager
}

// NewServer creates a new MCP server backed by the given window manager.
func NewServer(windowMgr *window.Manager) *Server {
	s := &Server{
		windowMgr: windowMgr,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	logger.WithComponent("mcp").Info().
		Str("backend", s.windowMgr.System().Name()).
		Msg("Serving MCP on stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the titled top-level windows a user would recognize as open applications, in window-system order. Tool windows, child windows, cloaked windows and this process's own console are never listed. Minimized windows are listed only in include-minimized mode.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "find_window",
		Description: "Find the first listed window whose title contains the given text (case-insensitive). Returns found=false when nothing matches.",
	}, s.handleFindWindow)
}
