package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/internal/version"
)

// AnalyzeUseCase orchestrates the batch analysis workflow for the CLI:
// collect files, extract text, analyze each, summarize and format.
type AnalyzeUseCase struct {
	service    domain.AnalysisService
	fileReader domain.SourceFileReader
	extractor  domain.TextExtractor
	formatter  domain.OutputFormatter
	progress   domain.ProgressReporter
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(
	service domain.AnalysisService,
	fileReader domain.SourceFileReader,
	extractor domain.TextExtractor,
	formatter domain.OutputFormatter,
	progress domain.ProgressReporter,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:    service,
		fileReader: fileReader,
		extractor:  extractor,
		formatter:  formatter,
		progress:   progress,
	}
}

// Execute performs the complete batch analysis workflow
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.BatchRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return err
	}

	files, err := uc.fileReader.CollectSourceFiles(
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return domain.NewInvalidInputError("failed to collect source files", err)
	}
	if len(files) == 0 {
		return domain.NewInvalidInputError("no source files found in the specified paths", nil)
	}

	if uc.progress != nil {
		uc.progress.StartProgress(len(files))
		defer uc.progress.FinishProgress()
	}

	response := uc.analyzeFiles(ctx, files, req)

	if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

func (uc *AnalyzeUseCase) analyzeFiles(ctx context.Context, files []string, req domain.BatchRequest) *domain.BatchResponse {
	var results []domain.FileAnalysis
	var warnings []string
	var errors []string

	for i, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			errors = append(errors, fmt.Sprintf("[%s] Failed to read file: %v", path, err))
			continue
		}

		source, err := uc.extractor.Extract(content, path)
		if err != nil {
			errors = append(errors, fmt.Sprintf("[%s] Extraction failed: %v", path, err))
			continue
		}

		result, err := uc.service.Analyze(ctx, source)
		if err != nil {
			if domain.ErrorCode(err) == domain.ErrCodeInvalidInput {
				warnings = append(warnings, fmt.Sprintf("[%s] File contains no analyzable text", path))
			} else {
				errors = append(errors, fmt.Sprintf("[%s] Analysis failed: %v", path, err))
			}
			continue
		}

		results = append(results, domain.FileAnalysis{Path: path, Result: *result})

		if uc.progress != nil {
			uc.progress.UpdateProgress(i + 1)
		}
	}

	sortResults(results, req.SortBy)

	return &domain.BatchResponse{
		Files:       results,
		Summary:     buildSummary(results),
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}
}

func (uc *AnalyzeUseCase) validateRequest(req domain.BatchRequest) error {
	if len(req.Paths) == 0 {
		return domain.NewInvalidInputError("no input paths specified", nil)
	}
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}
	return nil
}

var classRank = map[domain.Classification]int{
	domain.ClassificationSimple:   1,
	domain.ClassificationModerate: 2,
	domain.ClassificationComplex:  3,
}

func sortResults(results []domain.FileAnalysis, sortBy domain.SortCriteria) {
	switch sortBy {
	case domain.SortByName:
		sort.Slice(results, func(i, j int) bool {
			return results[i].Path < results[j].Path
		})
	case domain.SortByConfidence:
		sort.Slice(results, func(i, j int) bool {
			return results[i].Result.Complexity.ConfidenceScore > results[j].Result.Complexity.ConfidenceScore
		})
	default: // complexity
		sort.Slice(results, func(i, j int) bool {
			ri := classRank[results[i].Result.Complexity.Classification]
			rj := classRank[results[j].Result.Complexity.Classification]
			if ri != rj {
				return ri > rj
			}
			return results[i].Result.Metrics.LOC > results[j].Result.Metrics.LOC
		})
	}
}

func buildSummary(results []domain.FileAnalysis) domain.BatchSummary {
	summary := domain.BatchSummary{TotalFiles: len(results)}
	if len(results) == 0 {
		return summary
	}

	var totalConfidence float64
	for _, file := range results {
		summary.TotalLOC += file.Result.Metrics.LOC
		totalConfidence += file.Result.Complexity.ConfidenceScore

		if file.Result.Metrics.NestedDepth > summary.MaxNestedDepth {
			summary.MaxNestedDepth = file.Result.Metrics.NestedDepth
		}

		switch file.Result.Complexity.Classification {
		case domain.ClassificationSimple:
			summary.SimpleFiles++
		case domain.ClassificationModerate:
			summary.ModerateFiles++
		case domain.ClassificationComplex:
			summary.ComplexFiles++
		}
	}
	summary.AverageConfidence = totalConfidence / float64(len(results))

	return summary
}
