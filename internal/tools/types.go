// Package tools defines the agent-tool surface of pagectl.
//
// Every page operation the CLI exposes is also registered here as a tool
// with a JSON schema, so structured callers (an MCP client, typically) can
// invoke the same request builders the shell commands use. The registry is
// the single source of truth; the MCP bridge in mcp.go projects it onto a
// server.
package tools

import (
	"context"
)

// Category classifies tools for listing and filtering.
type Category string

const (
	// CategoryPages covers page listing and page object reads.
	CategoryPages Category = "/pages"

	// CategoryPublishing covers posts, photos and videos.
	CategoryPublishing Category = "/publishing"

	// CategoryModeration covers comment moderation (hide, delete, reply).
	CategoryModeration Category = "/moderation"

	// CategoryInsights covers metrics queries.
	CategoryInsights Category = "/insights"
)

// Property describes one parameter in a tool's JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	// Items describes array element schema (required for type="array").
	Items *PropertyItems `json:"items,omitempty"`
}

// PropertyItems describes the schema for array elements.
type PropertyItems struct {
	Type string `json:"type"`
}

// Schema defines the JSON schema for tool arguments.
type Schema struct {
	Required   []string            `json:"required"`
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc is the signature for tool execution. The returned value is
// serialized to JSON for the caller; it is usually the remote API's response
// verbatim, per the transparent-pipe contract.
type ExecuteFunc func(ctx context.Context, args map[string]any) (any, error)

// Tool is one callable page operation.
type Tool struct {
	// Name is the unique identifier, e.g. "post_create".
	Name string

	// Description explains what the tool does, for tool-calling clients.
	Description string

	// Category classifies the tool.
	Category Category

	// Schema defines the expected arguments.
	Schema Schema

	// Execute runs the tool.
	Execute ExecuteFunc
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}
