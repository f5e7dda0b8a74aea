package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mdview/server/rpc"
)

func (s *Server) handleReadFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// An empty path is still a path; the session reports it as a file access failure.
	path, err := req.RequireString("path")
	if err != nil {
		return ValidationError("path is required"), nil
	}

	content, err := s.session.ReadFile(path)
	if err != nil {
		return CommandError(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) handleGetInitialFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(rpc.NewPathResult(s.session.GetInitialFile()))
}

func (s *Server) handleOpenFileDialog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok, err := s.picker.PickFile(ctx)
	if err != nil {
		return CommandError(err), nil
	}
	return jsonResult(rpc.NewPathResult(path, ok))
}

func (s *Server) handleCheckFileChanged(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(rpc.CheckFileChangedResult{Changed: s.session.CheckFileChanged()})
}

func (s *Server) handleDismissFileChange(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.session.DismissFileChange()
	return jsonResult(struct{}{})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
