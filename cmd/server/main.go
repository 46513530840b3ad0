package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/basel-ax/storyteller/internal/config"
	"github.com/basel-ax/storyteller/internal/infrastructure/gemini"
	"github.com/basel-ax/storyteller/internal/lib/sl"
	"github.com/basel-ax/storyteller/internal/prompt"
	"github.com/basel-ax/storyteller/internal/server"
	"github.com/basel-ax/storyteller/internal/service"
)

func main() {
	envFile := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("failed to load configuration", sl.Err(err))
		os.Exit(1)
	}

	log := setupLogger(cfg.Env)
	log.With(
		slog.String("env", cfg.Env),
		slog.String("model", cfg.Gemini.Model),
		sl.Secret(cfg.Gemini.APIKey),
	).Info("starting visual storyteller")

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", sl.Err(err))
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Endpoint, log)
	if err != nil {
		return err
	}
	template, err := prompt.LensPoet()
	if err != nil {
		return err
	}

	storyteller := service.NewStorytellerService(model, template, log)
	srv := server.New(storyteller, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(cfg.HTTPAddr)
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		log.Info("received signal, shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal, config.EnvDev:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
