package mcp

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mdview/server/dialog"
	"github.com/mdview/server/rpc"
	"github.com/mdview/server/session"
)

type ErrorCode string

const (
	ErrFileAccess        ErrorCode = rpc.KindFileAccess
	ErrDialogUnavailable ErrorCode = rpc.KindDialogUnavailable
	ErrValidation        ErrorCode = "validation"
	ErrInternal          ErrorCode = "internal"
)

type ToolError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e ToolError) ToResult() *mcp.CallToolResult {
	data, _ := json.Marshal(e)
	return mcp.NewToolResultError(string(data))
}

func ValidationError(msg string) *mcp.CallToolResult {
	return ToolError{
		Code:    ErrValidation,
		Message: msg,
	}.ToResult()
}

// CommandError classifies a session or dialog failure.
func CommandError(err error) *mcp.CallToolResult {
	var accessErr *session.FileAccessError
	if errors.As(err, &accessErr) {
		return ToolError{
			Code:    ErrFileAccess,
			Message: err.Error(),
			Details: map[string]any{"path": accessErr.Path},
		}.ToResult()
	}

	var dialogErr *dialog.DialogUnavailableError
	if errors.As(err, &dialogErr) {
		return ToolError{Code: ErrDialogUnavailable, Message: err.Error()}.ToResult()
	}

	return ToolError{Code: ErrInternal, Message: err.Error()}.ToResult()
}
