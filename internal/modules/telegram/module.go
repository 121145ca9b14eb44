package telegram

import (
	"context"

	"trade_watch/internal/models"
	"trade_watch/internal/modules/config"
	healthsvc "trade_watch/internal/modules/health/service"
	mt5svc "trade_watch/internal/modules/mt5/service"
	"trade_watch/internal/modules/telegram/service"
	"trade_watch/internal/modules/telegram/service/pg"
	watchersvc "trade_watch/internal/modules/watcher/service"
	"trade_watch/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Pg-хранилище настроек чата
		fx.Provide(
			pg.NewSettings, // func(*db.PgTxManager) *pg.Settings
		),
		fx.Provide(
			func(s *pg.Settings) watchersvc.ChatSettings { return s },
		),

		// 2. Канал доставки: если TELEGRAM_* нет — пишем в stdout.
		// Несуществующий чат назначения валит процесс ещё тут,
		// до старта мониторинга.
		fx.Provide(
			func(
				cfg *config.Config,
				m *mt5svc.Client,
				repo *pg.Settings,
				state *healthsvc.State,
			) (watchersvc.Notifier, error) {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					return notify.NewStdout(), nil
				}
				return service.NewTelegram(cfg, m, repo, state)
			},
		),

		// Настройки грузим один раз на старте, потом запускаем long-poll.
		fx.Invoke(
			func(lc fx.Lifecycle, n watchersvc.Notifier, repo *pg.Settings, cfg *config.Config, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						err := repo.Load(ctx, cfg.Telegram.ChatID, models.WatchSettings{
							Symbol:       cfg.Watch.Symbol,
							PollInterval: cfg.Watch.PollInterval,
						})
						if err != nil {
							return err
						}
						if tg, ok := n.(*service.Telegram); ok {
							go func() { _ = tg.Start(ctx) }()
						}
						return nil
					},
					OnStop: func(ctx context.Context) error {
						if tg, ok := n.(*service.Telegram); ok {
							tg.Stop()
						}
						return nil
					},
				})
			},
		),
	)
}
