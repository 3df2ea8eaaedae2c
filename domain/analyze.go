package domain

import (
	"context"
	"io"
	"strings"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SortCriteria represents the criteria for sorting batch results
type SortCriteria string

const (
	SortByComplexity SortCriteria = "complexity"
	SortByConfidence SortCriteria = "confidence"
	SortByName       SortCriteria = "name"
)

// Classification represents the complexity class of a source unit
type Classification string

const (
	ClassificationSimple   Classification = "Simple"
	ClassificationModerate Classification = "Moderate"
	ClassificationComplex  Classification = "Complex"
)

// Valid reports whether c is one of the three known classes.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationSimple, ClassificationModerate, ClassificationComplex:
		return true
	}
	return false
}

// Metrics holds the structural counters extracted from source text.
// All counters are non-negative and recomputed on every analysis.
type Metrics struct {
	LOC           int `json:"loc" yaml:"loc"`
	IfElseBlocks  int `json:"ifElseBlocks" yaml:"ifElseBlocks"`
	VariableCount int `json:"variableCount" yaml:"variableCount"`
	NestedDepth   int `json:"nestedDepth" yaml:"nestedDepth"`
}

// ClassificationResult is the outcome of one classifier invocation.
// It is always fully populated: class, confidence and explanation together.
type ClassificationResult struct {
	Classification  Classification `json:"classification"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Explanation     string         `json:"explanation"`
}

// Complexity is the classification pair exposed in responses.
type Complexity struct {
	Classification  Classification `json:"classification"`
	ConfidenceScore float64        `json:"confidenceScore"`
}

// ChartDataset is one chart.js-compatible dataset over the four metrics.
type ChartDataset struct {
	Label           string   `json:"label"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     []string `json:"borderColor"`
	BorderWidth     int      `json:"borderWidth"`
}

// ChartData is the chart-ready projection of Metrics. Labels and datasets
// are always in metric order: LOC, conditionals, variables, nested depth.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// AnalyzeResponse aggregates everything produced for one source unit.
type AnalyzeResponse struct {
	Metrics     Metrics    `json:"metrics" yaml:"metrics"`
	Complexity  Complexity `json:"complexity" yaml:"complexity"`
	Explanation string     `json:"explanation" yaml:"explanation"`
	ChartData   ChartData  `json:"chartData" yaml:"chartData"`
}

// FileAnalysis pairs a source path with its analysis result.
type FileAnalysis struct {
	Path   string          `json:"path" yaml:"path"`
	Result AnalyzeResponse `json:"result" yaml:"result"`
}

// BatchSummary holds aggregate statistics for a batch analysis run.
type BatchSummary struct {
	TotalFiles        int     `json:"totalFiles" yaml:"totalFiles"`
	TotalLOC          int     `json:"totalLoc" yaml:"totalLoc"`
	SimpleFiles       int     `json:"simpleFiles" yaml:"simpleFiles"`
	ModerateFiles     int     `json:"moderateFiles" yaml:"moderateFiles"`
	ComplexFiles      int     `json:"complexFiles" yaml:"complexFiles"`
	AverageConfidence float64 `json:"averageConfidence" yaml:"averageConfidence"`
	MaxNestedDepth    int     `json:"maxNestedDepth" yaml:"maxNestedDepth"`
}

// BatchResponse is the result of analyzing multiple files from the CLI.
type BatchResponse struct {
	Files       []FileAnalysis `json:"files" yaml:"files"`
	Summary     BatchSummary   `json:"summary" yaml:"summary"`
	Warnings    []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors      []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
	GeneratedAt string         `json:"generatedAt" yaml:"generatedAt"`
	Version     string         `json:"version" yaml:"version"`
}

// BatchRequest describes a CLI batch analysis run.
type BatchRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	SortBy       SortCriteria

	// File selection
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// NoModel forces the heuristic path even when a credential is present
	NoModel bool

	// Configuration
	ConfigPath string
}

// AnalysisService runs the full analysis pipeline over one source text.
type AnalysisService interface {
	// Analyze rejects empty or whitespace-only source and otherwise
	// always produces a fully assembled response.
	Analyze(ctx context.Context, source string) (*AnalyzeResponse, error)
}

// Classifier maps source text and its metrics to a classification result.
type Classifier interface {
	Classify(ctx context.Context, source string, metrics Metrics) (*ClassificationResult, error)
}

// TextExtractor turns uploaded file bytes into plain source text.
type TextExtractor interface {
	Extract(content []byte, filename string) (string, error)
}

// SourceFileReader collects source files for batch analysis.
type SourceFileReader interface {
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
}

// OutputFormatter formats batch responses for the CLI.
type OutputFormatter interface {
	Format(response *BatchResponse, format OutputFormat) (string, error)
	Write(response *BatchResponse, format OutputFormat, writer io.Writer) error
}

// ProgressReporter reports batch progress to the user.
type ProgressReporter interface {
	StartProgress(total int)
	UpdateProgress(processed int)
	FinishProgress()
}

// IsBlankSource reports whether source contains no analyzable text.
func IsBlankSource(source string) bool {
	return strings.TrimSpace(source) == ""
}
