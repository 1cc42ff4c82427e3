package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all srcscan MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("count_lines",
		mcp.WithDescription("Count code, comment and blank lines per language for a source tree"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to analyze")),
		mcp.WithBoolean("include_files",
			mcp.Description("Include per-file counts (default: false)")),
	), h.HandleCountLines)

	s.AddTool(mcp.NewTool("analyze_dependencies",
		mcp.WithDescription("Build the file dependency graph from imports and report circular dependencies and layer rule violations"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to analyze")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full", "mermaid"),
			mcp.Description("summary (default), full graph, or a Mermaid diagram")),
		mcp.WithString("focus",
			mcp.Description("Only draw nodes whose path contains this text (mermaid mode)")),
	), h.HandleAnalyzeDependencies)

	s.AddTool(mcp.NewTool("check_style",
		mcp.WithDescription("Profile the project's coding conventions and list files that deviate from them"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to analyze")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum inconsistencies to return (default: 20)")),
	), h.HandleCheckStyle)

	s.AddTool(mcp.NewTool("get_health_score",
		mcp.WithDescription("Run metrics, dependency and style analysis and return a 0-100 health score with grade"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to analyze")),
	), h.HandleGetHealthScore)
}
