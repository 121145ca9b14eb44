package mt5

import (
	"context"

	"trade_watch/internal/modules/mt5/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("mt5",
		fx.Provide(
			service.NewClient, // *service.Client
		),
		// Логин в терминал до старта мониторинга: не залогинились — падаем.
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return c.Connect(ctx)
				},
			})
		}),
	)
}
