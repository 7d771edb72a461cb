package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"skillswap/internal/app"
	"skillswap/internal/config"
)

const shutdownTimeout = 10 * time.Second

var bootstrapApp = app.Bootstrap

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("server: %v", err)
	}
}

// run serves until ctx is done or the listener fails. Cleanup always runs
// before it returns.
func run(ctx context.Context, cfg config.Config) (err error) {
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	bootstrap, cleanup, err := bootstrapApp(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			log.Printf("[Server] cleanup error | error=%v", cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	return serve(ctx,
		func() error { return bootstrap.Fiber.Listen(addr) },
		bootstrap.Fiber.ShutdownWithContext,
	)
}

// serve runs listen until it fails or ctx is done. On ctx done the server
// is given shutdownTimeout to drain.
func serve(ctx context.Context, listen func() error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("[Server] shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
