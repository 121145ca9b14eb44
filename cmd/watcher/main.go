package main

import (
	"context"
	"log"

	"trade_watch/internal/modules/config"
	"trade_watch/internal/modules/health"
	"trade_watch/internal/modules/mt5"
	"trade_watch/internal/modules/postgres"
	"trade_watch/internal/modules/telegram"
	"trade_watch/internal/modules/watcher"
	"trade_watch/pkg/logger"
	"trade_watch/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("trade_watch")
	tracing.SetServiceName("trade_watch")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		health.Module(),
		mt5.Module(),
		telegram.Module(),
		watcher.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			if cfg.Jaeger.Host == "" {
				return
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Error("init tracer: %v", err)
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
		}),
	)
	app.Run()
}
