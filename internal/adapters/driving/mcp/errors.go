// Package mcp provides an MCP (Model Context Protocol) server adapter for lionweb.
// It lets AI assistants deserialize and measure chunk files through tools.
package mcp

import "errors"

// ErrMissingEngine is returned when no engine builder is provided.
var ErrMissingEngine = errors.New("mcp: engine builder is required")
