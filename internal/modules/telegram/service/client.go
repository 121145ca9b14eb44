package service

import (
	"context"
	"fmt"

	"trade_watch/internal/models"
	"trade_watch/internal/modules/config"
	healthsvc "trade_watch/internal/modules/health/service"
	mt5svc "trade_watch/internal/modules/mt5/service"
	"trade_watch/internal/modules/telegram/service/pg"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram — канал доставки уведомлений + несколько сервисных команд
// (/status, /positions, /mute, /unmute).
type Telegram struct {
	bot   *tgbot.BotAPI
	cfg   *config.Config
	mt5   *mt5svc.Client
	repo  *pg.Settings
	state *healthsvc.State
}

func NewTelegram(
	cfg *config.Config,
	mt5 *mt5svc.Client,
	repo *pg.Settings,
	state *healthsvc.State,
) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	// Чат назначения проверяем сразу: нет чата — нет смысла стартовать.
	_, err = b.GetChat(tgbot.ChatInfoConfig{
		ChatConfig: tgbot.ChatConfig{ChatID: cfg.Telegram.ChatID},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram chat %d not reachable: %w", cfg.Telegram.ChatID, err)
	}

	return &Telegram{
		bot:   b,
		cfg:   cfg,
		mt5:   mt5,
		repo:  repo,
		state: state,
	}, nil
}

// Notify отправляет готовое уведомление в чат назначения.
// Доставку не гарантируем — fire-and-forget, как и весь канал.
func (t *Telegram) Notify(ctx context.Context, n models.Notification) error {
	msg := tgbot.NewMessage(t.cfg.Telegram.ChatID, renderNotification(n))
	msg.ParseMode = "Markdown"
	_, err := t.bot.Send(msg)
	return err
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) (tgbot.Message, error) {
	return t.bot.Send(tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbot.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

// Start ...
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)
	for update := range updates {
		t.handleUpdate(ctx, update)
	}
	return nil
}

func (t *Telegram) Stop() { t.bot.StopReceivingUpdates() }
