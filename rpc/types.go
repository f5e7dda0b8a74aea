// Package rpc defines JSON-RPC 2.0 wire format types for WebSocket communication.
// These types represent the params and result structures for all RPC methods.
package rpc

// Method names understood by the command dispatcher.
const (
	MethodAuth              = "auth"
	MethodReadFile          = "read_file"
	MethodGetInitialFile    = "get_initial_file"
	MethodOpenFileDialog    = "open_file_dialog"
	MethodCheckFileChanged  = "check_file_changed"
	MethodDismissFileChange = "dismiss_file_change"
)

// Error codes outside the JSON-RPC reserved range for domain failures.
const (
	CodeFileAccess        int64 = -32001
	CodeDialogUnavailable int64 = -32002
)

// Error kinds carried in the error data object.
const (
	KindFileAccess        = "FileAccessError"
	KindDialogUnavailable = "DialogUnavailableError"
)

// Client → Server

type AuthParams struct {
	Token string `json:"token"`
}

type AuthResult struct {
	Version string `json:"version"`
}

type ReadFileParams struct {
	Path string `json:"path"`
}

// Server → Client

type ReadFileResult struct {
	Content string `json:"content"`
}

// PathResult is shared by get_initial_file and open_file_dialog.
// Path is null when no file is active or the dialog was cancelled.
type PathResult struct {
	Path *string `json:"path"`
}

type CheckFileChangedResult struct {
	Changed bool `json:"changed"`
}

type ErrorData struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
}

// NewPathResult wraps an optional path.
func NewPathResult(path string, ok bool) PathResult {
	if !ok {
		return PathResult{}
	}
	return PathResult{Path: &path}
}
