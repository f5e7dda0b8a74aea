// Package mcp serves the viewer's file commands as MCP tools over stdio, so
// agent tooling can drive the same session the UI would.
package mcp

import (
	"context"
	"io"
	"log"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mdview/server/dialog"
	"github.com/mdview/server/session"
)

type Server struct {
	session *session.Manager
	picker  dialog.Picker
	mcp     *server.MCPServer
}

func NewServer(sess *session.Manager, picker dialog.Picker, version string) *Server {
	s := &Server{session: sess, picker: picker}
	s.mcp = server.NewMCPServer("mdview", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

// Run serves requests from in and writes responses to out until ctx is
// cancelled or in is closed.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(slogWriter{}, "", 0))
	slog.Info("MCP server started")
	return stdio.Listen(ctx, in, out)
}

// slogWriter forwards the stdio server's log.Logger output into slog.
type slogWriter struct{}

func (slogWriter) Write(p []byte) (int, error) {
	slog.Error("mcp stdio", "message", string(p))
	return len(p), nil
}
