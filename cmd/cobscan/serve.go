package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cobscan/api"
	"github.com/ludo-technologies/cobscan/internal/config"
	"github.com/ludo-technologies/cobscan/service"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var (
		host       string
		port       int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		Long: `Run the HTTP API serving the analysis pipeline.

Endpoints:
  GET  /         Liveness probe
  POST /analyze  Analyze inline source text ({"code": "..."})
  POST /upload   Analyze an uploaded file (.cbl, .txt, .pdf, .docx, ...)

The Gemini credential is read from GEMINI_API_KEY at startup. Without it the
server still runs; every request takes the metrics-based fallback path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger := newLogger(cfg.Logging.Level)
			slog.SetDefault(logger)

			if !cfg.HasAPIKey() {
				logger.Warn("GEMINI_API_KEY environment variable not set, all requests will use metrics-based classification")
			}

			classifier := service.NewGeminiClassifier(cfg.Model, service.NewHeuristicClassifier(), logger)
			analysisService := service.NewAnalysisService(classifier, logger)
			handler := api.NewHandler(analysisService, service.NewTextExtractor(), logger)
			server := api.NewServer(cfg.Server, handler, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultServerHost, "Host to bind")
	cmd.Flags().IntVar(&port, "port", config.DefaultServerPort, "Port to listen on")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")

	return cmd
}
