package tools

import (
	"fmt"

	"github.com/alucardeht/bareos-mcp/pkg/protocol"
)

// ToolError is an application-level failure. Unknown tools and failed
// console calls share CodeToolFailed.
type ToolError struct {
	Code    int64
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func NewToolNotFoundError(name string) *ToolError {
	return &ToolError{
		Code:    protocol.CodeToolFailed,
		Message: fmt.Sprintf("Unknown tool: %s", name),
	}
}

func NewToolExecutionError(name string, err error) *ToolError {
	return &ToolError{
		Code:    protocol.CodeToolFailed,
		Message: err.Error(),
		Err:     err,
	}
}
