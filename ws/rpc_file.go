package ws

import (
	"context"

	"github.com/mdview/server/rpc"
	"github.com/sourcegraph/jsonrpc2"
)

func (h *rpcMethodHandler) handleReadFile(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.ReadFileParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	content, err := h.session.ReadFile(params.Path)
	if err != nil {
		h.log.Warn("read_file failed", "path", params.Path, "error", err)
		h.replyCommandError(ctx, conn, req.ID, err)
		return
	}
	h.log.Debug("file read", "path", params.Path, "bytes", len(content))

	if err := conn.Reply(ctx, req.ID, rpc.ReadFileResult{Content: content}); err != nil {
		h.log.Error("failed to send read_file response", "error", err)
	}
}

func (h *rpcMethodHandler) handleGetInitialFile(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result := rpc.NewPathResult(h.session.GetInitialFile())
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send get_initial_file response", "error", err)
	}
}

func (h *rpcMethodHandler) handleOpenFileDialog(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	path, ok, err := h.picker.PickFile(ctx)
	if err != nil {
		h.log.Warn("open_file_dialog failed", "error", err)
		h.replyCommandError(ctx, conn, req.ID, err)
		return
	}
	if !ok {
		h.log.Debug("file dialog cancelled")
	}

	if err := conn.Reply(ctx, req.ID, rpc.NewPathResult(path, ok)); err != nil {
		h.log.Error("failed to send open_file_dialog response", "error", err)
	}
}

func (h *rpcMethodHandler) handleCheckFileChanged(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result := rpc.CheckFileChangedResult{Changed: h.session.CheckFileChanged()}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send check_file_changed response", "error", err)
	}
}

func (h *rpcMethodHandler) handleDismissFileChange(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	h.session.DismissFileChange()
	if err := conn.Reply(ctx, req.ID, struct{}{}); err != nil {
		h.log.Error("failed to send dismiss_file_change response", "error", err)
	}
}
