package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"eventgo-ticketing/cmd/bootstrap"
	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/usecase/commands"

	"go.uber.org/fx"
)

// loop runs fn every interval until ctx is cancelled. A full batch triggers an immediate rerun.
func loop(ctx context.Context, name string, interval time.Duration, batch int, fn func(context.Context) (int, error), logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := fn(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Error("worker iteration failed", "worker", name, "error", err)
		}
		if err == nil && batch > 0 && n >= batch {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func startWorkers(
	lc fx.Lifecycle,
	cfg config.Config,
	relay *commands.OutboxRelay,
	sweeper *commands.ExpirySweeper,
	logger *slog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				loop(ctx, "outbox", cfg.Worker.OutboxPollInterval, cfg.Worker.OutboxBatchSize, relay.RelayOnce, logger)
			}()

			if sweeper.Enabled() {
				wg.Add(1)
				go func() {
					defer wg.Done()
					loop(ctx, "expiry", cfg.Worker.ExpirySweepInterval, 0, sweeper.SweepOnce, logger)
				}()
			} else {
				logger.Info("reservation expiry disabled")
			}

			logger.Info("worker started",
				"outbox_poll_interval", cfg.Worker.OutboxPollInterval.String(),
				"broker", cfg.Broker.Kind)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				logger.Info("worker stopped")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Core,
		fx.Invoke(startWorkers),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("worker failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("worker failed to stop cleanly", "error", err)
	}
}
