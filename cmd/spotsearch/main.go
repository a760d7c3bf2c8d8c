// Package main запускает поиск треков в Spotify.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spotsearch/internal/app"
	"spotsearch/internal/config"
	"spotsearch/internal/gateway/spotify"
	"spotsearch/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return app.ExitUsage
	}

	// Инициализация логгера
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := spotify.NewClient(spotify.Options{
		BaseURL:     cfg.APIBaseURL,
		EncodeQuery: cfg.EncodeQuery,
		HTTPClient:  spotify.NewHTTPClient(cfg.HTTP, log),
	}, log)
	if err != nil {
		log.Error("Failed to create Spotify client", zap.Error(err))
		return app.ExitUsage
	}

	application := app.New(client, os.Stdout, log)
	return app.Execute(ctx, os.Args[1:], application.Run, os.Stderr, log)
}
