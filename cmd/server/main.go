package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/rpslsgame/internal/api"
	"github.com/mcoot/rpslsgame/internal/config"
	"github.com/mcoot/rpslsgame/internal/factory"
	redisstorage "github.com/mcoot/rpslsgame/internal/storage/redis"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	level, _ := settings.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config from settings
	cfg := factory.Config{
		Logger:      logger,
		StorageType: settings.StorageType,
		Locale:      settings.Locale,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = settings.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		PlayerService:  app.PlayerService,
		MoveService:    app.MoveService,
		GameController: app.GameController,
		Metrics:        app.Metrics,
		Events:         app.Events,
	})

	serverConfig := api.ServerConfigFromSettings(
		settings.Host,
		settings.Port,
		settings.ReadTimeout,
		settings.WriteTimeout,
		settings.ShutdownTimeout,
	)
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", settings.StorageType),
		slog.String("locale", app.Vocabulary.Name),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Open event streams would otherwise hold Shutdown until its timeout
		app.Events.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
