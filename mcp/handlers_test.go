package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/mcp"
	"github.com/ludo-technologies/cobscan/service"
)

func newHandlerSet() *mcp.HandlerSet {
	return mcp.NewHandlerSet(
		service.NewAnalysisService(service.NewHeuristicClassifier(), nil),
		service.NewTextExtractor(),
	)
}

func callTool(
	t *testing.T,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {
	t.Helper()

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(newHandlerSet(), context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleAnalyzeSource(t *testing.T) {
	res := callTool(t,
		map[string]interface{}{"source": "01 WS-A PIC 9.\nIF WS-A = 1\nEND-IF"},
		(*mcp.HandlerSet).HandleAnalyzeSource,
	)
	require.False(t, res.IsError)

	var decoded domain.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, 3, decoded.Metrics.LOC)
	assert.True(t, decoded.Complexity.Classification.Valid())
}

func TestHandleAnalyzeSource_MissingArgument(t *testing.T) {
	res := callTool(t, map[string]interface{}{}, (*mcp.HandlerSet).HandleAnalyzeSource)
	assert.True(t, res.IsError)
}

func TestHandleAnalyzeSource_BlankSource(t *testing.T) {
	res := callTool(t,
		map[string]interface{}{"source": "   "},
		(*mcp.HandlerSet).HandleAnalyzeSource,
	)
	assert.True(t, res.IsError)
}

func TestHandleAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.cbl")
	require.NoError(t, os.WriteFile(path, []byte("IF A\nEND-IF\n"), 0o644))

	res := callTool(t,
		map[string]interface{}{"path": path},
		(*mcp.HandlerSet).HandleAnalyzeFile,
	)
	require.False(t, res.IsError)

	var decoded domain.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, 2, decoded.Metrics.LOC)
}

func TestHandleAnalyzeFile_MissingFile(t *testing.T) {
	res := callTool(t,
		map[string]interface{}{"path": "/nonexistent/file.cbl"},
		(*mcp.HandlerSet).HandleAnalyzeFile,
	)
	assert.True(t, res.IsError)
}

func TestHandleAnalyzeFile_InvalidArguments(t *testing.T) {
	res := callTool(t, "not a map", (*mcp.HandlerSet).HandleAnalyzeFile)
	assert.True(t, res.IsError)
}
