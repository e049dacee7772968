package mcprt

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Caller runs a tool and returns its text payload.
type Caller func(ctx context.Context, name string, args map[string]any) (string, error)

// Bridge registers every tool of the registry into an MCP server. Errors from
// call are returned to the SDK and reach the client as protocol errors.
func Bridge(srv *server.MCPServer, reg *Registry, call Caller) {
	for _, t := range reg.List() {
		registerTool(srv, t, call)
	}
}

func registerTool(srv *server.MCPServer, t Tool, call Caller) {
	tool := mcp.NewToolWithRawSchema(t.Name, t.Description, t.RawInputSchema())

	toolName := t.Name
	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := call(ctx, toolName, req.GetArguments())
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(text), nil
	})
}
