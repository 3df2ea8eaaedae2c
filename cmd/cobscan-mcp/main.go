package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/cobscan/internal/config"
	"github.com/ludo-technologies/cobscan/internal/version"
	"github.com/ludo-technologies/cobscan/mcp"
	"github.com/ludo-technologies/cobscan/service"
)

const serverName = "cobscan"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if !cfg.HasAPIKey() {
		log.Println("WARNING: GEMINI_API_KEY environment variable not set, using metrics-based classification")
	}

	classifier := service.NewGeminiClassifier(cfg.Model, service.NewHeuristicClassifier(), nil)
	handlers := mcp.NewHandlerSet(
		service.NewAnalysisService(classifier, nil),
		service.NewTextExtractor(),
	)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - analyze_source: Analyze inline COBOL source text")
	log.Println("  - analyze_file: Analyze a source file on disk")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport
	// This blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
