package service

import (
	"context"
	"log"
	"time"

	"trade_watch/internal/models"
	"trade_watch/internal/modules/config"
	healthsvc "trade_watch/internal/modules/health/service"
	"trade_watch/internal/watch"
	"trade_watch/pkg/logger"

	"github.com/opentracing/opentracing-go"
	otext "github.com/opentracing/opentracing-go/ext"
)

// SnapshotSource — граница платформы: полный срез ордеров/позиций
// и размер пункта. Hints — необязательный будильник (WS бриджа).
type SnapshotSource interface {
	Orders(ctx context.Context) (map[int64]models.PendingOrder, error)
	Positions(ctx context.Context) (map[int64]models.Position, error)
	Point(ctx context.Context, symbol string) (float64, error)
	Hints(ctx context.Context) <-chan struct{}
}

type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

type ChatSettings interface {
	IsMuted(kind models.EventKind) bool
	Snapshot() models.WatchSettings
}

// Watcher — единственный цикл опроса: срез → дифф → уведомления → сон.
// Предыдущий срез принадлежит только ему и заменяется целиком в конце
// удачного цикла.
type Watcher struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      *config.Config
	src      SnapshotSource
	n        Notifier
	settings ChatSettings
	state    *healthsvc.State

	symbol   string
	interval time.Duration

	prev models.Snapshot
}

func NewWatcher(
	cfg *config.Config,
	src SnapshotSource,
	n Notifier,
	settings ChatSettings,
	state *healthsvc.State,
) *Watcher {
	return &Watcher{
		cfg:      cfg,
		src:      src,
		n:        n,
		settings: settings,
		state:    state,
	}
}

func (w *Watcher) Run(parent context.Context) {
	w.ctx, w.cancel = context.WithCancel(parent)

	// Настройки чата грузятся один раз на старте; пустые поля — из конфига.
	st := w.settings.Snapshot()
	w.symbol = st.Symbol
	if w.symbol == "" {
		w.symbol = w.cfg.Watch.Symbol
	}
	w.interval = st.PollInterval
	if w.interval <= 0 {
		w.interval = w.cfg.Watch.PollInterval
	}

	// Первый срез — точка отсчёта: по сущностям, которые существовали
	// до старта мониторинга, события не шлём.
	for {
		snap, err := w.fetch(w.ctx)
		if err == nil {
			w.prev = snap
			break
		}
		logger.Error("watcher: initial snapshot: %v", err)
		select {
		case <-w.ctx.Done():
			return
		case <-time.After(w.interval):
		}
	}

	w.state.SetReady(true)
	log.Printf("[WATCH] старт: %s, интервал %s", w.symbol, w.interval)
	if err := w.n.Notify(w.ctx, models.Notification{
		Title:    "Monitoring Started",
		Severity: models.SeverityInfo,
		Fields: []models.Field{
			{Name: "Symbol", Value: w.symbol},
			{Name: "Interval", Value: w.interval.String()},
		},
	}); err != nil {
		logger.Error("watcher: start notice: %v", err)
	}

	hints := w.src.Hints(w.ctx)
	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		// остановка проверяется только здесь, до следующего опроса —
		// начатый цикл дорабатывает до конца
		select {
		case <-w.ctx.Done():
			return
		case <-timer.C:
		case <-hints:
			// бридж намекнул, что на счёте движение — опрашиваем раньше
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		w.cycle(w.ctx)
		timer.Reset(w.interval)
	}
}

// cycle — одна итерация. Любая ошибка внутри: лог, счётчик, предыдущий
// срез не трогаем — на следующем тике переходы не потеряются и не
// задвоятся.
func (w *Watcher) cycle(ctx context.Context) {
	span := opentracing.StartSpan("poll_cycle")
	defer span.Finish()
	span.SetTag("symbol", w.symbol)
	ctx = opentracing.ContextWithSpan(ctx, span)

	// размер пункта — один раз на цикл, не на сущность
	point, err := w.src.Point(ctx, w.symbol)
	if err != nil {
		logger.Error("watcher: point size: %v", err)
		w.state.CycleError()
		otext.Error.Set(span, true)
		return
	}

	curr, err := w.fetch(ctx)
	if err != nil {
		logger.Error("watcher: snapshot: %v", err)
		w.state.CycleError()
		otext.Error.Set(span, true)
		return
	}

	events := watch.Diff(w.prev, curr, w.symbol, point)
	span.SetTag("events", len(events))

	sent := 0
	for _, e := range events {
		if w.settings.IsMuted(e.Kind) {
			continue
		}
		// доставка fire-and-forget: ошибка канала не роняет цикл
		if err := w.n.Notify(ctx, watch.Format(e)); err != nil {
			logger.Error("watcher: notify %s #%d: %v", e.Kind, e.Ticket, err)
		}
		sent++
	}
	if len(events) > 0 {
		log.Printf("[WATCH] %s: событий=%d отправлено=%d", w.symbol, len(events), sent)
	}

	w.prev = curr
	w.state.TouchPoll(time.Now(), sent)
}

// fetch собирает срез счёта из двух вызовов бриджа.
func (w *Watcher) fetch(ctx context.Context) (models.Snapshot, error) {
	orders, err := w.src.Orders(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	positions, err := w.src.Positions(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{Orders: orders, Positions: positions}, nil
}

// Stop — мягко гасит цикл и шлёт прощальное сообщение.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = w.n.Notify(ctx, models.Notification{
		Title:    "Monitoring Stopped",
		Severity: models.SeverityInfo,
		Fields: []models.Field{
			{Name: "Symbol", Value: w.symbol},
		},
	})
}
