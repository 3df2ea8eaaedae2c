package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/cobscan/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	service   domain.AnalysisService
	extractor domain.TextExtractor
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(service domain.AnalysisService, extractor domain.TextExtractor) *HandlerSet {
	return &HandlerSet{
		service:   service,
		extractor: extractor,
	}
}

// HandleAnalyzeSource handles the analyze_source tool
func (h *HandlerSet) HandleAnalyzeSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	source, ok := args["source"].(string)
	if !ok {
		return mcp.NewToolResultError("source parameter is required and must be a string"), nil
	}

	return h.analyze(ctx, source)
}

// HandleAnalyzeFile handles the analyze_file tool
func (h *HandlerSet) HandleAnalyzeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	source, err := h.extractor.Extract(content, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to extract text: %v", err)), nil
	}

	return h.analyze(ctx, source)
}

func (h *HandlerSet) analyze(ctx context.Context, source string) (*mcp.CallToolResult, error) {
	result, err := h.service.Analyze(ctx, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
