package protocol

import (
	"encoding/json"
	"errors"

	"github.com/sourcegraph/jsonrpc2"
)

const Version = "2.0"

const (
	CodeMethodNotFound = jsonrpc2.CodeMethodNotFound

	// CodeToolFailed is the application error code for unknown tools and
	// failed console invocations.
	CodeToolFailed int64 = -32000
)

// JSONRPCRequest keeps ID as raw JSON so it can be echoed back exactly,
// whether it was a number, a string, null or missing.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse always carries an id; a nil ID encodes as null.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

type JSONRPCError = jsonrpc2.Error

func NewError(code int64, message string) *JSONRPCError {
	return &JSONRPCError{Code: code, Message: message}
}

type Tool struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Annotations map[string]bool `json:"annotations,omitempty"`
}

type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

var ErrInvalidJSON = errors.New("invalid JSON")

// ParseRequest only fails on malformed JSON. Members are looked up by
// their exact key and a member of the wrong type reads as absent, so a
// request with "method": 42 still gets an answer instead of being lost.
// Non-object values give an empty request.
func ParseRequest(line []byte) (*JSONRPCRequest, error) {
	if !json.Valid(line) {
		return nil, ErrInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		fields = nil
	}

	return &JSONRPCRequest{
		JSONRPC: rawString(fields["jsonrpc"]),
		ID:      fields["id"],
		Method:  rawString(fields["method"]),
		Params:  fields["params"],
	}, nil
}

// ParseToolCall reads tools/call params with the same leniency: a
// missing or non-string name is "", arguments are passed on raw.
func ParseToolCall(params json.RawMessage) ToolCall {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(params, &fields); err != nil {
		return ToolCall{}
	}
	return ToolCall{
		Name:      rawString(fields["name"]),
		Arguments: fields["arguments"],
	}
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CallToolResult struct {
	Content []Content `json:"content"`
}

func TextResult(text string) CallToolResult {
	return CallToolResult{Content: []Content{{Type: "text", Text: text}}}
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ServerInfo      ServerInfo             `json:"serverInfo"`
}

type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}
