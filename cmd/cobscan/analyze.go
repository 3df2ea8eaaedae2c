package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cobscan/app"
	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/internal/config"
	"github.com/ludo-technologies/cobscan/service"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var (
		outputJSON bool
		outputYAML bool
		outputCSV  bool

		sortBy          string
		recursive       bool
		includePatterns []string
		excludePatterns []string

		noModel    bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze COBOL source files",
		Long: `Analyze COBOL source files and report structural complexity.

Examples:
  cobscan analyze src/                  # Analyze all COBOL files in src/
  cobscan analyze PAYROLL.cbl           # Analyze a single program
  cobscan analyze --json src/           # Output as JSON
  cobscan analyze --sort name src/      # Sort results by file name
  cobscan analyze --no-model src/       # Skip the Gemini call entirely

Sort options:
  complexity - Sort by complexity class, then size (default)
  confidence - Sort by confidence score
  name       - Sort alphabetically by file path`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Logging.Level)

			heuristic := service.NewHeuristicClassifier()
			var classifier domain.Classifier = heuristic
			if !noModel {
				if cfg.HasAPIKey() {
					classifier = service.NewGeminiClassifier(cfg.Model, heuristic, logger)
				} else {
					logger.Warn("GEMINI_API_KEY environment variable not set, using metrics-based classification")
				}
			}

			useCase := app.NewAnalyzeUseCase(
				service.NewAnalysisService(classifier, logger),
				service.NewSourceFileReader(),
				service.NewTextExtractor(),
				service.NewOutputFormatter(),
				service.NewProgressReporter(),
			)

			req := domain.DefaultBatchRequest()
			req.Paths = args
			req.OutputFormat = resolveOutputFormat(outputJSON, outputYAML, outputCSV, cfg.Output.Format)
			req.OutputWriter = cmd.OutOrStdout()
			req.Recursive = recursive
			req.NoModel = noModel
			req.ConfigPath = configPath

			if cmd.Flags().Changed("sort") {
				req.SortBy = domain.SortCriteria(sortBy)
			} else {
				req.SortBy = domain.SortCriteria(cfg.Output.SortBy)
			}
			if cmd.Flags().Changed("include") {
				req.IncludePatterns = includePatterns
			} else {
				req.IncludePatterns = cfg.Analysis.IncludePatterns
			}
			if cmd.Flags().Changed("exclude") {
				req.ExcludePatterns = excludePatterns
			} else {
				req.ExcludePatterns = cfg.Analysis.ExcludePatterns
			}

			return useCase.Execute(cmd.Context(), req)
		},
	}

	// Output options
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&outputYAML, "yaml", false, "Output as YAML")
	cmd.Flags().BoolVar(&outputCSV, "csv", false, "Output as CSV")
	cmd.Flags().StringVar(&sortBy, "sort", "complexity", "Sort criteria (complexity|confidence|name)")

	// File selection options
	cmd.Flags().BoolVar(&recursive, "recursive", true, "Recursively analyze subdirectories")
	cmd.Flags().StringSliceVar(&includePatterns, "include", domain.DefaultIncludePatterns, "Include file patterns")
	cmd.Flags().StringSliceVar(&excludePatterns, "exclude", []string{}, "Exclude file patterns")

	// Analysis options
	cmd.Flags().BoolVar(&noModel, "no-model", false, "Force metrics-based classification, never call the model")

	// Configuration
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")

	return cmd
}
