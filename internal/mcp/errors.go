package mcp

import (
	"errors"
	"fmt"
)

// ErrMissingCredential marks a stream backend whose bearer token is unset.
var ErrMissingCredential = errors.New("missing credential")

// TransportConnectError reports a backend that could not be started, reached
// or initialized. It is fatal to session start.
type TransportConnectError struct {
	Server string
	Err    error
}

func (e *TransportConnectError) Error() string {
	return fmt.Sprintf("connect MCP server %q: %v", e.Server, e.Err)
}

func (e *TransportConnectError) Unwrap() error { return e.Err }

// ToolError is a tool result the server flagged with isError.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tool %q reported an error", e.Tool)
	}
	return e.Message
}
