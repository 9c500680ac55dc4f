package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP projects every registered tool onto an MCP server.
//
// Arguments arrive as json.RawMessage in req.Params.Arguments. A tool-level
// failure goes back via result.SetError with a nil error return; returning a
// non-nil error from the handler would be a JSON-RPC protocol error instead.
func RegisterMCP(srv *mcp.Server, reg *Registry) {
	for _, t := range reg.All() {
		registerMCPTool(srv, reg, t)
	}
}

func registerMCPTool(srv *mcp.Server, reg *Registry, t *Tool) {
	tool := &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: inputSchema(t.Schema),
	}

	name := t.Name
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("invalid arguments: %w", err))
				return &res, nil
			}
		}

		result, err := reg.Execute(ctx, name, args)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal result: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// inputSchema renders a tool schema as the JSON-schema object the SDK
// expects. Must carry "type":"object" or the SDK may reject it.
func inputSchema(s Schema) json.RawMessage {
	obj := map[string]any{
		"type":       "object",
		"properties": s.Properties,
	}
	if len(s.Required) > 0 {
		obj["required"] = s.Required
	}
	data, err := json.Marshal(obj)
	if err != nil {
		panic(fmt.Sprintf("marshal tool schema: %v", err))
	}
	return json.RawMessage(data)
}
