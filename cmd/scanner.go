package main

import (
	"context"
	"fmt"

	"riskscanner/internal/config"
	"riskscanner/internal/scanner"
	"riskscanner/pkg/analyzer/gemini"
	"riskscanner/pkg/logger"
	"riskscanner/pkg/rules"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// getRegistry returns the built-in rules followed by the configured rule pack.
func getRegistry(ctx context.Context, cfg *config.Config) (*rules.Registry, error) {
	registry := rules.Baseline()
	if cfg.Rules.File == "" {
		return registry, nil
	}

	extra, err := rules.LoadFile(cfg.Rules.File)
	if err != nil {
		return nil, fmt.Errorf("could not load rule pack %s: %w", cfg.Rules.File, err)
	}
	registry, err = registry.With(extra...)
	if err != nil {
		return nil, fmt.Errorf("could not register rule pack %s: %w", cfg.Rules.File, err)
	}
	logger.Info(ctx, "rule pack loaded", zap.String("file", cfg.Rules.File), zap.Int("rules", len(extra)))

	return registry, nil
}

// getScanner builds the scanner selected by analyzer.provider and wraps it
// with telemetry. The returned cleanup function releases the analyzer client.
func getScanner(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) (scanner.Scanner, func(), error) {
	opts := scanner.NewOptions(cfg)
	cleanup := func() {}

	var s scanner.Scanner
	switch cfg.Analyzer.Provider {
	case "gemini":
		client, err := gemini.New(ctx, gemini.Options{
			APIKey: cfg.Analyzer.APIKey,
			Model:  cfg.Analyzer.Model,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create gemini client: %w", err)
		}
		cleanup = func() {
			logger.Info(ctx, "closing gemini client...")
			if err := client.Close(); err != nil {
				logger.Warn(ctx, "could not close gemini client", zap.Error(err))
			}
		}
		s = scanner.NewAI(client, opts)
	default:
		registry, err := getRegistry(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		s = scanner.New(registry, opts)
	}

	s, err := scanner.WithTelemetry(s, scanner.Telemetry{
		Backend:        cfg.Analyzer.Provider,
		MeterProvider:  mp,
		TracerProvider: otel.GetTracerProvider(),
	})
	if err != nil {
		cleanup()

		return nil, nil, fmt.Errorf("could not instrument scanner: %w", err)
	}

	return s, cleanup, nil
}
