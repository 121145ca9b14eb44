package service

import (
	"context"
	"os"
	"testing"

	"trade_watch/internal/models"
	"trade_watch/internal/modules/config"
	healthsvc "trade_watch/internal/modules/health/service"
	"trade_watch/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

type stubSource struct {
	orders    map[int64]models.PendingOrder
	positions map[int64]models.Position
	err       error
}

func (s *stubSource) Orders(ctx context.Context) (map[int64]models.PendingOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func (s *stubSource) Positions(ctx context.Context) (map[int64]models.Position, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.positions, nil
}

func (s *stubSource) Point(ctx context.Context, symbol string) (float64, error) {
	return 0.01, nil
}

func (s *stubSource) Hints(ctx context.Context) <-chan struct{} {
	return make(chan struct{})
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type stubSettings struct {
	muted map[models.EventKind]bool
}

func (s *stubSettings) IsMuted(kind models.EventKind) bool { return s.muted[kind] }
func (s *stubSettings) Snapshot() models.WatchSettings     { return models.WatchSettings{} }

func newTestWatcher(src SnapshotSource, n Notifier, muted map[models.EventKind]bool) *Watcher {
	cfg := &config.Config{}
	cfg.Watch.Symbol = "XAUUSD"
	w := NewWatcher(cfg, src, n, &stubSettings{muted: muted}, healthsvc.NewState())
	w.symbol = "XAUUSD"
	w.prev = models.NewSnapshot()
	return w
}

func TestCycleDispatchesEventsInOrder(t *testing.T) {
	src := &stubSource{
		orders: map[int64]models.PendingOrder{
			1: {Ticket: 1, Symbol: "XAUUSD", Kind: models.OrderKindBuyLimit, OpenPrice: 1900},
		},
		positions: map[int64]models.Position{
			5: {Ticket: 5, Symbol: "XAUUSD", Side: models.SideBuy, OpenPrice: 1900, CurrentPrice: 1901, Volume: 1.0},
		},
	}
	n := new(mockNotifier)
	w := newTestWatcher(src, n, nil)

	var titles []string
	n.On("Notify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		titles = append(titles, args.Get(1).(models.Notification).Title)
	}).Return(nil)

	w.cycle(context.Background())

	// сначала ордерные события, потом позиционные
	assert.Equal(t, []string{"Pending Order Placed", "Position Opened"}, titles)
	// текущий срез стал предыдущим
	assert.Len(t, w.prev.Orders, 1)
	assert.Len(t, w.prev.Positions, 1)
	assert.Equal(t, int64(1), w.state.Cycles())
}

func TestCycleNoChangesNoNotifications(t *testing.T) {
	src := &stubSource{
		positions: map[int64]models.Position{
			5: {Ticket: 5, Symbol: "XAUUSD", Side: models.SideBuy, OpenPrice: 1900, CurrentPrice: 1901, Volume: 1.0},
		},
	}
	n := new(mockNotifier)
	w := newTestWatcher(src, n, nil)
	w.prev = models.Snapshot{
		Orders:    map[int64]models.PendingOrder{},
		Positions: map[int64]models.Position{5: src.positions[5]},
	}

	w.cycle(context.Background())

	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestCycleFetchErrorKeepsPrevious(t *testing.T) {
	prev := models.Snapshot{
		Orders: map[int64]models.PendingOrder{
			1: {Ticket: 1, Symbol: "XAUUSD", Kind: models.OrderKindBuyLimit, OpenPrice: 1900},
		},
		Positions: map[int64]models.Position{},
	}

	src := &stubSource{err: assert.AnError}
	n := new(mockNotifier)
	w := newTestWatcher(src, n, nil)
	w.prev = prev

	w.cycle(context.Background())

	// цикл выброшен: уведомлений нет, предыдущий срез цел — переход
	// не потеряется и не задвоится на следующем тике
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	require.Len(t, w.prev.Orders, 1)
	assert.Equal(t, int64(1), w.state.CycleErrors())
	assert.Equal(t, int64(0), w.state.Cycles())
}

func TestCycleMutedKindSkipped(t *testing.T) {
	src := &stubSource{
		orders: map[int64]models.PendingOrder{
			1: {Ticket: 1, Symbol: "XAUUSD", Kind: models.OrderKindBuyLimit, OpenPrice: 1900},
		},
		positions: map[int64]models.Position{
			5: {Ticket: 5, Symbol: "XAUUSD", Side: models.SideBuy, OpenPrice: 1900, CurrentPrice: 1901, Volume: 1.0},
		},
	}
	n := new(mockNotifier)
	w := newTestWatcher(src, n, map[models.EventKind]bool{
		models.EventOrderCreated: true,
	})

	var titles []string
	n.On("Notify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		titles = append(titles, args.Get(1).(models.Notification).Title)
	}).Return(nil)

	w.cycle(context.Background())

	assert.Equal(t, []string{"Position Opened"}, titles)
}

func TestCycleNotifyErrorDoesNotStopDispatch(t *testing.T) {
	src := &stubSource{
		orders: map[int64]models.PendingOrder{
			1: {Ticket: 1, Symbol: "XAUUSD", Kind: models.OrderKindBuyLimit, OpenPrice: 1900},
			2: {Ticket: 2, Symbol: "XAUUSD", Kind: models.OrderKindSellStop, OpenPrice: 1880},
		},
	}
	n := new(mockNotifier)
	w := newTestWatcher(src, n, nil)

	// канал доставки барахлит — цикл всё равно дорабатывает
	n.On("Notify", mock.Anything, mock.Anything).Return(assert.AnError)

	w.cycle(context.Background())

	n.AssertNumberOfCalls(t, "Notify", 2)
	assert.Len(t, w.prev.Orders, 2)
}
