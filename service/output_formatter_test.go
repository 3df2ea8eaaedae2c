package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/cobscan/domain"
)

func sampleBatchResponse() *domain.BatchResponse {
	return &domain.BatchResponse{
		Files: []domain.FileAnalysis{
			{
				Path: "payroll.cbl",
				Result: domain.AnalyzeResponse{
					Metrics: domain.Metrics{LOC: 120, IfElseBlocks: 14, VariableCount: 22, NestedDepth: 3},
					Complexity: domain.Complexity{
						Classification:  domain.ClassificationModerate,
						ConfidenceScore: 81.0,
					},
					Explanation: HeuristicExplanation,
				},
			},
		},
		Summary: domain.BatchSummary{
			TotalFiles:        1,
			TotalLOC:          120,
			ModerateFiles:     1,
			AverageConfidence: 81.0,
			MaxNestedDepth:    3,
		},
		GeneratedAt: "2026-01-01T00:00:00Z",
		Version:     "test",
	}
}

func TestOutputFormatter_Text(t *testing.T) {
	formatter := NewOutputFormatter()

	out, err := formatter.Format(sampleBatchResponse(), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Complexity Analysis Report")
	assert.Contains(t, out, "payroll.cbl")
	assert.Contains(t, out, "Moderate")
	assert.Contains(t, out, "Files analyzed:     1")
}

func TestOutputFormatter_JSON(t *testing.T) {
	formatter := NewOutputFormatter()

	out, err := formatter.Format(sampleBatchResponse(), domain.OutputFormatJSON)
	require.NoError(t, err)

	var decoded domain.BatchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *sampleBatchResponse(), decoded)
}

func TestOutputFormatter_YAML(t *testing.T) {
	formatter := NewOutputFormatter()

	out, err := formatter.Format(sampleBatchResponse(), domain.OutputFormatYAML)
	require.NoError(t, err)

	var decoded domain.BatchResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleBatchResponse().Summary, decoded.Summary)
}

func TestOutputFormatter_CSV(t *testing.T) {
	formatter := NewOutputFormatter()

	out, err := formatter.Format(sampleBatchResponse(), domain.OutputFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "file,classification,confidence,loc,if_else_blocks,variable_count,nested_depth", lines[0])
	assert.Equal(t, "payroll.cbl,Moderate,81.0,120,14,22,3", lines[1])
}

func TestOutputFormatter_UnsupportedFormat(t *testing.T) {
	formatter := NewOutputFormatter()

	_, err := formatter.Format(sampleBatchResponse(), domain.OutputFormat("html"))
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(err))
}

func TestOutputFormatter_Write(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	require.NoError(t, formatter.Write(sampleBatchResponse(), domain.OutputFormatText, &buf))
	assert.Contains(t, buf.String(), "payroll.cbl")
}
