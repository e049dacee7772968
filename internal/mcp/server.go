// Package mcp assembles the MCP server: the tool catalog bridged to the
// dispatcher, and the read-only data resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/toolhost/internal/mockdata"
	"github.com/hazyhaar/toolhost/pkg/mcprt"
)

// Name is the server name reported during initialization.
const Name = "toolhost"

// NewServer creates an MCPServer exposing every tool in reg through call, and
// the users and stats resources backed by data.
func NewServer(reg *mcprt.Registry, call mcprt.Caller, data *mockdata.Store, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	mcprt.Bridge(srv, reg, call)
	registerResources(srv, data, time.Now)

	return srv
}

func registerResources(srv *server.MCPServer, data *mockdata.Store, now func() time.Time) {
	users := mcp.NewResource("data://users", "Kullanici Listesi",
		mcp.WithResourceDescription("All users"),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(users, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonContents(req.Params.URI, data.Users)
	})

	stats := mcp.NewResource("data://stats", "Server Istatistikleri",
		mcp.WithResourceDescription("Server statistics"),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(stats, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonContents(req.Params.URI, data.Stats(now()))
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(text)},
	}, nil
}
