package main

import (
	"log/slog"
	"os"

	"github.com/ludo-technologies/cobscan/domain"
)

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

// resolveOutputFormat maps the mutually exclusive format flags to a format,
// falling back to the configured default.
func resolveOutputFormat(jsonFlag, yamlFlag, csvFlag bool, configured string) domain.OutputFormat {
	switch {
	case jsonFlag:
		return domain.OutputFormatJSON
	case yamlFlag:
		return domain.OutputFormatYAML
	case csvFlag:
		return domain.OutputFormatCSV
	}

	switch domain.OutputFormat(configured) {
	case domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV:
		return domain.OutputFormat(configured)
	default:
		return domain.OutputFormatText
	}
}
