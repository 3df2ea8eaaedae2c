package analyzer

import "strings"

// SourceMetrics holds the lexical counters derived from raw source text.
type SourceMetrics struct {
	// Count of non-blank lines
	LOC int

	// Count of lines containing a conditional keyword
	ConditionalLines int

	// Count of lines starting with a level number
	VariableLines int

	// Maximum nesting depth observed over the whole text
	MaxNestingDepth int
}

// Keyword sets for the lexical scan. Matching is deliberately raw substring
// search, not word-bounded: an identifier like PERFORMANCE counts as an
// opener. This mirrors the published scoring behavior and is kept as-is.
var (
	conditionalKeywords = []string{"IF", "ELSE", "WHEN", "EVALUATE"}
	openingKeywords     = []string{"IF", "EVALUATE", "PERFORM"}
	closingKeywords     = []string{"END-IF", "END-EVALUATE", "END-PERFORM"}
)

// ExtractMetrics scans raw source text and derives the structural counters.
// It has no failure mode: empty or whitespace-only input yields all zeros.
func ExtractMetrics(source string) SourceMetrics {
	var m SourceMetrics

	depth := 0
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			m.LOC++
			if trimmed[0] >= '0' && trimmed[0] <= '9' {
				m.VariableLines++
			}
		}

		upper := strings.ToUpper(line)
		if containsAny(upper, conditionalKeywords) {
			m.ConditionalLines++
		}

		// Depth tracks opening keywords against their END- counterparts.
		// The final value is the maximum seen, not the ending depth, and
		// is floored at zero on unbalanced closers.
		switch {
		case containsAny(upper, openingKeywords) && !strings.Contains(upper, "END-"):
			depth++
			if depth > m.MaxNestingDepth {
				m.MaxNestingDepth = depth
			}
		case containsAny(upper, closingKeywords):
			if depth > 0 {
				depth--
			}
		}
	}

	return m
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
