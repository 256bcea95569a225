package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"userapp/internal/adapter/database/postgres"
	pgrepository "userapp/internal/adapter/database/postgres/repository"
	"userapp/internal/adapter/database/sqlite"
	sqliterepository "userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/adapter/http/routes"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
	"userapp/pkg/logging"
)

func StartServer(metrics *telemetry.AppMetrics, logger *logging.LokiLogger) error {
	return StartServerWithConfig(metrics, logger, config.Load())
}

func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *logging.LokiLogger, cfg *config.AppConfig) error {
	userRepo, closeDB, err := openRepository()

	if err != nil {
		return err
	}

	defer closeDB()

	container := NewContainer(userRepo, metrics)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		UserHandler: container.UserHandler,
	}, metrics, logger, cfg)

	port := config.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"cache_enabled", cfg.CacheEnabled)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
		return err
	}

	return nil
}

// openRepository targets postgres when DATABASE_URL is set and falls back to
// the local sqlite file otherwise.
func openRepository() (port.UserRepository, func(), error) {
	if os.Getenv("DATABASE_URL") != "" {
		db, err := postgres.NewDB(context.Background())

		if err != nil {
			return nil, nil, err
		}

		return pgrepository.NewUserRepository(db), db.Close, nil
	}

	db, err := sqlite.NewDB()

	if err != nil {
		return nil, nil, err
	}

	return sqliterepository.NewUserRepository(db), func() { db.Close() }, nil
}
