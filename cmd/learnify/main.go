package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/learnify/internal/cli"
	"github.com/dmitrijs2005/learnify/internal/config"
	"github.com/dmitrijs2005/learnify/internal/logging"
	"github.com/dmitrijs2005/learnify/internal/storage"
	"github.com/google/uuid"
)

func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	st, err := storage.Open(ctx, cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer st.Close()

	logger.Debug(ctx, "storage ready", "driver", cfg.StorageDriver)

	app, err := cli.NewApp(cfg, st.KV, logger, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Run(ctx)
	}()

	// a pending terminal read does not observe ctx, so stop waiting for it
	select {
	case <-done:
	case <-ctx.Done():
		fmt.Println()
		logger.Debug(ctx, "interrupted")
	}
	return nil
}

func main() {
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel).With("instance", uuid.NewString())

	ctx, cancelFunc := context.WithCancel(context.Background())
	initSignalHandler(cancelFunc)

	err := run(ctx, cfg, logger)
	cancelFunc()
	if err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}
}
