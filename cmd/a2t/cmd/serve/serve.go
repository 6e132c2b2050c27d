package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"audioscribe/internal/api/server"
	v1routes "audioscribe/internal/api/v1/routes"
	"audioscribe/internal/api/v1/services"
	"audioscribe/internal/app"
	"audioscribe/internal/app/embedding"
	"audioscribe/internal/app/provider"
)

var port string

func init() {
	Cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on, defaults to API_PORT or 8080")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Exposes transcription, provider and embedding endpoints under /api/v1,
Prometheus metrics under /metrics and Swagger docs under /swagger.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

		cfg := app.LoadProvidersConfig()
		registry, err := app.BuildRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to build provider registry: %v\n", err)
		}

		db, err := app.NewTranscriptionDAO()
		if err != nil {
			log.Fatalf("Failed to open transcription database: %v\n", err)
		}
		defer db.Close()

		metricsRegistry := prometheus.NewRegistry()
		metricsRegistry.MustRegister(collectors.NewGoCollector())
		metricsRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := provider.NewMetrics(metricsRegistry)

		orchestrator := app.BuildOrchestrator(registry, metrics, cfg)

		container := &v1routes.ServiceContainer{
			TranscriptionService: services.NewTranscriptionService(orchestrator, db),
			ProviderService:      services.NewProviderService(registry),
		}
		if embedProvider, err := embedding.NewOpenAIProviderFromEnv(); err == nil {
			container.EmbeddingService = services.NewEmbeddingService(embedProvider, db)
		} else {
			logger.Warn("embedding endpoints disabled", "error", err)
		}

		serverConfig := server.DefaultConfig()
		if port != "" {
			serverConfig.Port = port
		}

		srv := server.NewServer(serverConfig, container, metricsRegistry, logger)
		if err := srv.Start(); err != nil {
			log.Fatalf("Failed to start server: %v\n", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v\n", err)
		}
	},
}
