package domain

// Chart projection contract: four series in fixed metric order with a fixed
// RGBA palette, matching what the frontend chart component expects.
var (
	// ChartLabels are the series labels in metric order.
	ChartLabels = []string{"Lines of Code", "IF/ELSE Blocks", "Variables", "Nested Depth"}

	// ChartBackgroundColors are the per-series fill colors.
	ChartBackgroundColors = []string{
		"rgba(54, 162, 235, 0.6)",
		"rgba(255, 206, 86, 0.6)",
		"rgba(75, 192, 192, 0.6)",
		"rgba(153, 102, 255, 0.6)",
	}

	// ChartBorderColors are the per-series border colors.
	ChartBorderColors = []string{
		"rgba(54, 162, 235, 1)",
		"rgba(255, 206, 86, 1)",
		"rgba(75, 192, 192, 1)",
		"rgba(153, 102, 255, 1)",
	}
)

// ChartBorderWidth is the fixed dataset border width.
const ChartBorderWidth = 1

// ChartDatasetLabel is the label of the single metrics dataset.
const ChartDatasetLabel = "Code Metrics"

// DefaultIncludePatterns matches common COBOL source and copybook extensions.
var DefaultIncludePatterns = []string{"*.cbl", "*.cob", "*.cpy"}

// DefaultBatchRequest returns a BatchRequest with sensible defaults applied.
func DefaultBatchRequest() BatchRequest {
	return BatchRequest{
		OutputFormat:    OutputFormatText,
		SortBy:          SortByComplexity,
		Recursive:       true,
		IncludePatterns: DefaultIncludePatterns,
		ExcludePatterns: []string{},
	}
}
