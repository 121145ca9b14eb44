package watcher

import (
	"context"

	mt5svc "trade_watch/internal/modules/mt5/service"
	"trade_watch/internal/modules/watcher/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("watcher",
		fx.Provide(
			service.NewWatcher, // *service.Watcher
			func(c *mt5svc.Client) service.SnapshotSource { return c },
		),
		fx.Invoke(func(lc fx.Lifecycle, w *service.Watcher, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go w.Run(ctx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					w.Stop()
					return nil
				},
			})
		}),
	)
}
