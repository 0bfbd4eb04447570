package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/bryanchriswhite/WindowScout/internal/window"
)

// resolveMode parses a tool's mode argument, defaulting to the manager's mode.
func (s *Server) resolveMode(raw string) (window.SearchMode, error) {
	if strings.TrimSpace(raw) == "" {
		return s.windowMgr.Mode(), nil
	}
	return window.ParseSearchMode(raw)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	mode, err := s.resolveMode(args.Mode)
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows := s.windowMgr.DescribeAll(s.windowMgr.Snapshot(mode))
	logger.WithComponent("mcp").Debug().
		Str("mode", mode.String()).
		Int("count", len(windows)).
		Msg("list_windows")

	return nil, ListWindowsOutput{
		Mode:    mode.String(),
		Count:   len(windows),
		Windows: windows,
	}, nil
}

func (s *Server) handleFindWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FindWindowInput) (*mcpsdk.CallToolResult, FindWindowOutput, error) {
	if strings.TrimSpace(args.Title) == "" {
		return nil, FindWindowOutput{}, fmt.Errorf("title is required")
	}
	mode, err := s.resolveMode(args.Mode)
	if err != nil {
		return nil, FindWindowOutput{}, err
	}

	info, err := s.windowMgr.FindByTitle(mode, args.Title)
	if errors.Is(err, window.ErrNoMatch) {
		return nil, FindWindowOutput{Found: false}, nil
	}
	if err != nil {
		return nil, FindWindowOutput{}, err
	}

	d := s.windowMgr.Describe(info)
	return nil, FindWindowOutput{Found: true, Window: &d}, nil
}
