package mcp

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read a text file and make it the active document. Returns the file contents."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file to read")),
	), s.handleReadFile)

	s.mcp.AddTool(mcp.NewTool("get_initial_file",
		mcp.WithDescription("Return the active document path, or null when no file is loaded."),
	), s.handleGetInitialFile)

	s.mcp.AddTool(mcp.NewTool("open_file_dialog",
		mcp.WithDescription("Show the native file picker (Markdown, All Files). Returns the chosen path or null if cancelled. Does not read the file."),
	), s.handleOpenFileDialog)

	s.mcp.AddTool(mcp.NewTool("check_file_changed",
		mcp.WithDescription("Report whether the active document's modification time differs from the last read or dismiss."),
	), s.handleCheckFileChanged)

	s.mcp.AddTool(mcp.NewTool("dismiss_file_change",
		mcp.WithDescription("Acknowledge an external change without re-reading the document."),
	), s.handleDismissFileChange)
}
