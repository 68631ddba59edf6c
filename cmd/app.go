package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"acadiasafe/internal/components"
	"acadiasafe/internal/config"
)

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config failed", "err", err)
		return err
	}
	logger := components.SetupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comps, err := components.InitComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := comps.HttpServer.Run(ctx); err != nil {
			logger.Error("http server failed", "err", err)
			stop()
		}
		logger.Info("http server stopped")
	}()

	if comps.Notifier != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comps.Notifier.Run(ctx)
			logger.Info("notifier stopped")
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		comps.Dispatcher.Run(ctx)
		logger.Info("escort dispatcher stopped")
	}()

	<-ctx.Done()
	logger.Info("captured signal, initiating shutdown")

	wg.Wait()

	logger.Info("shutting down the services...")
	comps.ShutdownAll()
	logger.Info("gracefully shut down")
	return nil
}
