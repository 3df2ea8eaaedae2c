package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/internal/analyzer"
)

// AnalysisServiceImpl implements the AnalysisService interface. It runs the
// metric extraction, delegates classification and assembles the response.
type AnalysisServiceImpl struct {
	classifier domain.Classifier
	logger     *slog.Logger
}

// NewAnalysisService creates a new analysis service implementation
func NewAnalysisService(classifier domain.Classifier, logger *slog.Logger) *AnalysisServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisServiceImpl{
		classifier: classifier,
		logger:     logger,
	}
}

// Analyze runs the full pipeline over one source text. Empty or
// whitespace-only input is rejected before any work; classification always
// succeeds functionally because the classifier chain ends in the heuristic.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, source string) (*domain.AnalyzeResponse, error) {
	if domain.IsBlankSource(source) {
		return nil, domain.NewInvalidInputError("source text is required", nil)
	}

	raw := analyzer.ExtractMetrics(source)
	metrics := domain.Metrics{
		LOC:           raw.LOC,
		IfElseBlocks:  raw.ConditionalLines,
		VariableCount: raw.VariableLines,
		NestedDepth:   raw.MaxNestingDepth,
	}

	result, err := s.classifier.Classify(ctx, source, metrics)
	if err != nil {
		return nil, domain.NewAnalysisError("classification failed", err)
	}

	s.logger.Debug("source analyzed",
		"loc", metrics.LOC,
		"classification", result.Classification,
		"confidence", result.ConfidenceScore)

	return &domain.AnalyzeResponse{
		Metrics: metrics,
		Complexity: domain.Complexity{
			Classification:  result.Classification,
			ConfidenceScore: clampConfidence(result.ConfidenceScore),
		},
		Explanation: result.Explanation,
		ChartData:   buildChartData(metrics),
	}, nil
}

// buildChartData projects the metrics into the fixed four-series chart
// shape, always in metric order.
func buildChartData(m domain.Metrics) domain.ChartData {
	return domain.ChartData{
		Labels: domain.ChartLabels,
		Datasets: []domain.ChartDataset{
			{
				Label:           domain.ChartDatasetLabel,
				Data:            []int{m.LOC, m.IfElseBlocks, m.VariableCount, m.NestedDepth},
				BackgroundColor: domain.ChartBackgroundColors,
				BorderColor:     domain.ChartBorderColors,
				BorderWidth:     domain.ChartBorderWidth,
			},
		},
	}
}
