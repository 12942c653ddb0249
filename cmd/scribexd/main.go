// scribexd serves the editor-facing generation gateway and highlighting API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	scribex "github.com/fhswno/scribex-js-sub001"
	"github.com/fhswno/scribex-js-sub001/config"
	"github.com/fhswno/scribex-js-sub001/highlight"
	"github.com/fhswno/scribex-js-sub001/providers/anthropic"
	"github.com/fhswno/scribex-js-sub001/providers/backend"
	"github.com/fhswno/scribex-js-sub001/providers/lorem"
	"github.com/fhswno/scribex-js-sub001/server"
)

// CLI holds the command-line flags. File values from --config are the base;
// flags and env vars override them.
type CLI struct {
	Config   string `help:"Path to config file" short:"c" type:"path" env:"SCRIBEX_CONFIG"`
	Listen   string `help:"Address to listen on (overrides config)" env:"SCRIBEX_LISTEN"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" env:"SCRIBEX_LOG_LEVEL"`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("scribexd"),
		kong.Description("Editor backend: AI generation gateway and code highlighting"),
		kong.UsageOnError(),
	)

	// Best effort: API keys may live in a .env file during development.
	_ = godotenv.Load()

	setupLogging(cli.LogLevel)

	if err := run(cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.Listen != "" {
		cfg.Listen = cli.Listen
	}

	registry, err := buildProviders(cfg)
	if err != nil {
		return err
	}
	highlighter := highlight.NewService(cfg.Highlight.Style)

	handler := server.SetupMux(registry, highlighter, scribex.ProviderID(cfg.DefaultProvider))
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: handler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("scribexd listening", "addr", cfg.Listen, "providers", registry.Names())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func buildProviders(cfg *config.Config) (*scribex.Registry, error) {
	var providers []scribex.Provider

	for _, pc := range cfg.Providers {
		switch pc.Type {
		case config.TypeLorem:
			providers = append(providers, lorem.New(lorem.Config{Delay: 30 * time.Millisecond}))
			slog.Info("provider registered", "name", scribex.ProviderLorem, "type", pc.Type)

		case config.TypeAnthropic:
			p, err := anthropic.New(anthropic.Config{
				APIKey: pc.APIKey(),
				Model:  pc.Model,
			})
			if err != nil {
				return nil, fmt.Errorf("provider anthropic: %w", err)
			}
			providers = append(providers, p)
			slog.Info("provider registered", "name", p.Name(), "type", pc.Type, "model", pc.Model)

		default: // generic HTTP backend
			p, err := backend.New(backend.Config{
				Name:     pc.Name,
				Endpoint: pc.Endpoint,
				APIKey:   pc.APIKey(),
			})
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
			slog.Info("provider registered", "name", p.Name(), "endpoint", pc.Endpoint)
		}
	}

	return scribex.NewRegistry(providers...), nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
