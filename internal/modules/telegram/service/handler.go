package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trade_watch/internal/models"
	"trade_watch/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var muteKinds = []models.EventKind{
	models.EventOrderCreated,
	models.EventOrderModified,
	models.EventOrderDeleted,
	models.EventPositionOpened,
	models.EventPositionModified,
	models.EventPositionPartialClose,
	models.EventPositionClosed,
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	// слушаем только чат назначения
	if msg.Chat.ID != t.cfg.Telegram.ChatID {
		return
	}

	switch msg.Command() {
	case "start", "help":
		t.handleStart(ctx, msg.Chat.ID)
	case "status":
		t.handleStatus(ctx, msg.Chat.ID)
	case "positions":
		t.handlePositions(ctx, msg.Chat.ID)
	case "mute":
		t.handleMute(ctx, msg.Chat.ID, msg.CommandArguments(), true)
	case "unmute":
		t.handleMute(ctx, msg.Chat.ID, msg.CommandArguments(), false)
	default:
		// прочее игнорируем
	}
}

func (t *Telegram) handleStart(ctx context.Context, chatID int64) {
	text := "Привет! Я слежу за счётом MT5 и присылаю изменения ордеров и позиций.\n\n" +
		"Команды:\n" +
		"/status — состояние вотчера\n" +
		"/positions — открытые позиции\n" +
		"/mute <событие> — не присылать события этого типа\n" +
		"/unmute <событие> — снова присылать"
	if _, err := t.Send(ctx, chatID, text); err != nil {
		logger.Error("handleStart error: %v", err)
	}
}

func (t *Telegram) handleStatus(ctx context.Context, chatID int64) {
	last := "—"
	if lp := t.state.LastPoll(); !lp.IsZero() {
		last = time.Since(lp).Round(time.Second).String() + " назад"
	}
	_, err := t.SendF(ctx, chatID,
		"🩺 STATUS | symbol=%s | uptime=%s\nциклов=%d | ошибок=%d | событий=%d | последний опрос: %s",
		t.cfg.Watch.Symbol,
		t.state.Uptime().Round(time.Second),
		t.state.Cycles(),
		t.state.CycleErrors(),
		t.state.EventsSent(),
		last,
	)
	if err != nil {
		logger.Error("handleStatus error: %v", err)
	}
}

// /positions — вывод открытых позиций прямо из терминала.
func (t *Telegram) handlePositions(ctx context.Context, chatID int64) {
	positions, err := t.mt5.Positions(ctx)
	if err != nil {
		_, _ = t.SendF(ctx, chatID, "❗️ Ошибка получения позиций: %v", err)
		return
	}
	if len(positions) == 0 {
		_, _ = t.Send(ctx, chatID, "📭 Открытых позиций нет")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Открытые позиции:\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "- #%d %s [%s] vol=%.2f @ %.5f sl=%.5f tp=%.5f\n",
			p.Ticket, p.Symbol, p.Side, p.Volume, p.OpenPrice, p.SL, p.TP)
	}
	if _, err := t.Send(ctx, chatID, b.String()); err != nil {
		logger.Error("handlePositions error: %v", err)
	}
}

func (t *Telegram) handleMute(ctx context.Context, chatID int64, arg string, mute bool) {
	arg = strings.TrimSpace(strings.ToLower(arg))
	if arg == "" {
		var b strings.Builder
		b.WriteString("События:\n")
		for _, k := range muteKinds {
			mark := "🔔"
			if t.repo.IsMuted(k) {
				mark = "🔕"
			}
			fmt.Fprintf(&b, "%s %s\n", mark, k)
		}
		_, _ = t.Send(ctx, chatID, b.String())
		return
	}

	known := false
	for _, k := range muteKinds {
		if k.String() == arg {
			known = true
			break
		}
	}
	if !known {
		_, _ = t.SendF(ctx, chatID, "❗️ Не знаю событие %q, смотри /mute без аргументов", arg)
		return
	}

	if err := t.repo.SetMuted(ctx, arg, mute); err != nil {
		logger.Error("SetMuted error: %v", err)
		_, _ = t.SendF(ctx, chatID, "❗️ Не смог сохранить настройку: %v", err)
		return
	}
	if mute {
		_, _ = t.SendF(ctx, chatID, "🔕 %s больше не присылаю", arg)
	} else {
		_, _ = t.SendF(ctx, chatID, "🔔 %s снова присылаю", arg)
	}
}
