package analyzer

import "hash/fnv"

// Band thresholds for the metrics-based scoring. Each metric contributes a
// sub-score of 1..4; the total ranges 4..16.
const (
	locBandLow    = 100
	locBandMedium = 300
	locBandHigh   = 500

	conditionalBandLow    = 10
	conditionalBandMedium = 25
	conditionalBandHigh   = 50

	variableBandLow    = 20
	variableBandMedium = 50
	variableBandHigh   = 100

	depthBandLow    = 3
	depthBandMedium = 5
	depthBandHigh   = 7
)

// Classification boundaries over the total score.
const (
	SimpleScoreMax   = 6
	ModerateScoreMax = 10
)

// ComplexityScore maps the four counters to a total score in [4, 16].
func ComplexityScore(m SourceMetrics) int {
	return band(m.LOC, locBandLow, locBandMedium, locBandHigh) +
		band(m.ConditionalLines, conditionalBandLow, conditionalBandMedium, conditionalBandHigh) +
		band(m.VariableLines, variableBandLow, variableBandMedium, variableBandHigh) +
		band(m.MaxNestingDepth, depthBandLow, depthBandMedium, depthBandHigh)
}

func band(value, low, medium, high int) int {
	switch {
	case value < low:
		return 1
	case value < medium:
		return 2
	case value < high:
		return 3
	default:
		return 4
	}
}

// StableHash returns a deterministic, well-distributed hash of the source
// bytes. FNV-1a 64 is the fixed contract choice: the heuristic confidence
// jitter derives from it, so the same text always yields the same confidence
// across runs and processes.
func StableHash(source string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(source))
	return h.Sum64()
}
