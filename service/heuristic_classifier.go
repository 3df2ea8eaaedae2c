package service

import (
	"context"

	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/internal/analyzer"
)

// HeuristicExplanation is the fixed explanation attached to every
// metrics-based classification.
const HeuristicExplanation = "Analysis performed using metrics-based classification. Enable Gemini API for more detailed analysis."

// Confidence jitter parameters per class. The jitter derives from a stable
// hash of the text, so identical input always yields identical confidence.
var confidenceBands = map[domain.Classification]struct {
	base   float64
	spread uint64
}{
	domain.ClassificationSimple:   {base: 85, spread: 10},
	domain.ClassificationModerate: {base: 75, spread: 15},
	domain.ClassificationComplex:  {base: 80, spread: 15},
}

// HeuristicClassifierImpl implements the Classifier interface with a
// deterministic metrics-based scoring. It is the fallback for every model
// failure and the whole path when no credential is configured.
type HeuristicClassifierImpl struct{}

// NewHeuristicClassifier creates a new heuristic classifier
func NewHeuristicClassifier() *HeuristicClassifierImpl {
	return &HeuristicClassifierImpl{}
}

// Classify maps the metrics to a complexity class. It never fails.
func (c *HeuristicClassifierImpl) Classify(ctx context.Context, source string, metrics domain.Metrics) (*domain.ClassificationResult, error) {
	score := analyzer.ComplexityScore(analyzer.SourceMetrics{
		LOC:              metrics.LOC,
		ConditionalLines: metrics.IfElseBlocks,
		VariableLines:    metrics.VariableCount,
		MaxNestingDepth:  metrics.NestedDepth,
	})

	classification := classifyScore(score)

	return &domain.ClassificationResult{
		Classification:  classification,
		ConfidenceScore: heuristicConfidence(classification, source),
		Explanation:     HeuristicExplanation,
	}, nil
}

// classifyScore maps the total score (4..16) to a class: <=6 Simple,
// <=10 Moderate, else Complex.
func classifyScore(score int) domain.Classification {
	switch {
	case score <= analyzer.SimpleScoreMax:
		return domain.ClassificationSimple
	case score <= analyzer.ModerateScoreMax:
		return domain.ClassificationModerate
	default:
		return domain.ClassificationComplex
	}
}

func heuristicConfidence(classification domain.Classification, source string) float64 {
	band := confidenceBands[classification]
	confidence := band.base + float64(analyzer.StableHash(source)%band.spread)
	return clampConfidence(confidence)
}

func clampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
