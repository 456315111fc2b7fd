package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"riskscanner/internal/api"
	"riskscanner/internal/api/handler/v1handler"
	"riskscanner/internal/config"
	"riskscanner/internal/scanner"
	"riskscanner/pkg/logger"
	"riskscanner/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, s scanner.Scanner, mp *metrics.Provider) func(ctx context.Context) {
	server := api.NewServer(ctx, api.Deps{
		Deps:    v1handler.Deps{Scanner: s},
		Metrics: mp.Handler(),
	}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.New()
			if err != nil {
				return err //nolint: wrapcheck
			}
			defer func() {
				if err := mp.Shutdown(context.Background()); err != nil {
					logger.Warn(ctx, "could not shut down meter provider", zap.Error(err))
				}
			}()

			s, closeScanner, err := getScanner(ctx, cfg, mp)
			if err != nil {
				return err
			}
			defer closeScanner()

			stopWebserver := setupServer(ctx, cfg, s, mp)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			return nil
		},
	}

	return cmd
}
