package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/cobscan/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Format formats the batch response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.BatchResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return f.formatJSON(response)
	case domain.OutputFormatYAML:
		return f.formatYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

func (f *OutputFormatterImpl) formatText(response *domain.BatchResponse) (string, error) {
	var builder strings.Builder

	builder.WriteString("Complexity Analysis Report\n")
	builder.WriteString(strings.Repeat("=", 60) + "\n\n")

	builder.WriteString(fmt.Sprintf("Files analyzed:     %d\n", response.Summary.TotalFiles))
	builder.WriteString(fmt.Sprintf("Total LOC:          %d\n", response.Summary.TotalLOC))
	builder.WriteString(fmt.Sprintf("Average confidence: %.1f\n", response.Summary.AverageConfidence))
	builder.WriteString(fmt.Sprintf("Max nested depth:   %d\n\n", response.Summary.MaxNestedDepth))

	builder.WriteString("Class distribution:\n")
	builder.WriteString(fmt.Sprintf("  Simple:   %d\n", response.Summary.SimpleFiles))
	builder.WriteString(fmt.Sprintf("  Moderate: %d\n", response.Summary.ModerateFiles))
	builder.WriteString(fmt.Sprintf("  Complex:  %d\n\n", response.Summary.ComplexFiles))

	if len(response.Files) > 0 {
		builder.WriteString(fmt.Sprintf("%-40s %-10s %-10s %6s %6s %6s %6s\n",
			"File", "Class", "Confid.", "LOC", "Cond", "Vars", "Depth"))
		builder.WriteString(strings.Repeat("-", 90) + "\n")
		for _, file := range response.Files {
			m := file.Result.Metrics
			builder.WriteString(fmt.Sprintf("%-40s %-10s %-10.1f %6d %6d %6d %6d\n",
				file.Path,
				file.Result.Complexity.Classification,
				file.Result.Complexity.ConfidenceScore,
				m.LOC, m.IfElseBlocks, m.VariableCount, m.NestedDepth))
		}
		builder.WriteString("\n")
	}

	for _, warning := range response.Warnings {
		builder.WriteString(fmt.Sprintf("Warning: %s\n", warning))
	}
	for _, errMsg := range response.Errors {
		builder.WriteString(fmt.Sprintf("Error: %s\n", errMsg))
	}

	builder.WriteString(fmt.Sprintf("\nGenerated at %s by cobscan %s\n", response.GeneratedAt, response.Version))

	return builder.String(), nil
}

func (f *OutputFormatterImpl) formatJSON(response *domain.BatchResponse) (string, error) {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data) + "\n", nil
}

func (f *OutputFormatterImpl) formatYAML(response *domain.BatchResponse) (string, error) {
	data, err := yaml.Marshal(response)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

func (f *OutputFormatterImpl) formatCSV(response *domain.BatchResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"file", "classification", "confidence", "loc", "if_else_blocks", "variable_count", "nested_depth"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, file := range response.Files {
		m := file.Result.Metrics
		record := []string{
			file.Path,
			string(file.Result.Complexity.Classification),
			strconv.FormatFloat(file.Result.Complexity.ConfidenceScore, 'f', 1, 64),
			strconv.Itoa(m.LOC),
			strconv.Itoa(m.IfElseBlocks),
			strconv.Itoa(m.VariableCount),
			strconv.Itoa(m.NestedDepth),
		}
		if err := writer.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV output", err)
	}

	return builder.String(), nil
}
