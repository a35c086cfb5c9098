package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/alucardeht/bareos-mcp/internal/tools"
	"github.com/alucardeht/bareos-mcp/pkg/protocol"
	"github.com/alucardeht/bareos-mcp/pkg/version"
)

type Handler struct {
	registry *tools.Registry
	log      *slog.Logger
}

func NewHandler(registry *tools.Registry, log *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log,
	}
}

func (h *Handler) Handle(ctx context.Context, req *Request) *Response {
	resp := &Response{
		JSONRPC: protocol.Version,
		ID:      req.ID,
	}

	switch req.Method {
	case "initialize":
		resp.Result = initializeResult()
	case "tools/list":
		resp.Result = h.handleListTools()
	case "tools/call":
		result, err := h.handleCallTool(ctx, req)
		if err != nil {
			resp.Error = toRPCError(err)
		} else {
			resp.Result = result
		}
	default:
		resp.Error = protocol.NewError(protocol.CodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}

	return resp
}

// initializeResult is static: the requested protocol version and client
// info are not looked at.
func initializeResult() protocol.InitializeResult {
	return protocol.InitializeResult{
		ProtocolVersion: version.ProtocolVersion,
		Capabilities: map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		ServerInfo: protocol.ServerInfo{
			Name:    version.Name,
			Version: version.Version,
		},
	}
}

func (h *Handler) handleListTools() protocol.ListToolsResult {
	toolsList := h.registry.List()
	toolsData := make([]protocol.Tool, len(toolsList))

	for i, t := range toolsList {
		toolData := protocol.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Schema(),
		}
		if annotated, ok := t.(tools.AnnotatedTool); ok {
			toolData.Title = annotated.Title()
			toolData.Annotations = annotated.Annotations()
		}
		toolsData[i] = toolData
	}

	return protocol.ListToolsResult{Tools: toolsData}
}

func (h *Handler) handleCallTool(ctx context.Context, req *Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool execution panicked: %v", r)
			h.log.Error("tool panic recovered",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	call := protocol.ParseToolCall(req.Params)

	h.log.Info("tool call", "tool", call.Name)

	output, err := h.registry.Execute(ctx, call.Name, call.Arguments)
	if err != nil {
		h.log.Warn("tool call failed", "tool", call.Name, "error", err)
		return nil, err
	}

	return protocol.TextResult(output), nil
}

// toRPCError maps everything coming out of tools/call to the application
// error code.
func toRPCError(err error) *protocol.JSONRPCError {
	code := protocol.CodeToolFailed
	var toolErr *tools.ToolError
	if errors.As(err, &toolErr) {
		code = toolErr.Code
	}
	return protocol.NewError(code, fmt.Sprintf("Tool execution failed: %s", err.Error()))
}
