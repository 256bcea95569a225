package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "userapp/internal/adapter/http"
	"userapp/internal/adapter/telemetry"
	"userapp/pkg/config"
	"userapp/pkg/logging"
)

func main() {
	ctx := context.Background()

	lokiURL := os.Getenv("LOKI_URL")

	if lokiURL == "" {
		lokiURL = "http://localhost:3100"
	}

	logger, err := logging.NewLokiLogger("userapp", lokiURL)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")

	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	telemetryContainer, err := telemetry.NewContainer(telemetry.Config{
		ServiceName:    "userapp",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   otlpEndpoint,
	}, slog.Default())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetryContainer.Shutdown(ctx)

	metrics := telemetryContainer.AppMetrics
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		cfg := config.Load()

		if os.Getenv("GIN_MODE") == "release" {
			cfg.Environment = "production"
		}

		if err := httpadapter.StartServerWithConfig(metrics, logger, cfg); err != nil {
			log.Fatal("Server failed:", err)
		}
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
