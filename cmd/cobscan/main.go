package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cobscan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cobscan",
	Short: "A COBOL Source Complexity Analyzer",
	Long: `cobscan estimates the structural complexity of COBOL source text.

It derives lexical metrics (lines of code, conditional blocks, declarations,
nesting depth), classifies each program as Simple, Moderate or Complex with a
confidence score, and explains the classification. When a Gemini API key is
configured the explanation comes from the model; otherwise a deterministic
metrics-based classification applies.`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
