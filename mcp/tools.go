package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all cobscan MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: analyze_source - analyze inline source text
	s.AddTool(mcp.NewTool("analyze_source",
		mcp.WithDescription("Estimate the structural complexity of COBOL source text: metrics, Simple/Moderate/Complex classification, confidence and explanation"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("COBOL source text to analyze")),
	), h.HandleAnalyzeSource)

	// Tool 2: analyze_file - analyze a file on disk
	s.AddTool(mcp.NewTool("analyze_file",
		mcp.WithDescription("Analyze a COBOL source file on disk. PDF and Word documents are converted to text first"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the file to analyze")),
	), h.HandleAnalyzeFile)
}
