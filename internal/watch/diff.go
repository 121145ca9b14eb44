package watch

import (
	"sort"

	"trade_watch/internal/models"
)

// Diff сравнивает два последовательных среза счёта и возвращает
// классифицированные изменения по одному инструменту.
//
// Чистая функция, без I/O, не падает ни на каком входе: тикет, попавший
// одновременно в ордера и позиции, — это просто два независимых сравнения.
// point — размер пункта инструмента, его достаёт и кеширует вызывающий
// (один раз на цикл опроса).
//
// Порядок событий фиксированный: сначала ордера, потом позиции; внутри —
// created, modified (для позиций modified/partial), deleted/closed,
// по возрастанию тикета. Это наш выбор ради детерминизма, терминал
// никакого порядка не гарантирует.
func Diff(prev, curr models.Snapshot, symbol string, point float64) []models.Event {
	events := diffOrders(prev, curr, symbol)
	return append(events, diffPositions(prev, curr, symbol, point)...)
}

func diffOrders(prev, curr models.Snapshot, symbol string) []models.Event {
	var created, modified, deleted []models.Event

	for _, t := range ticketsOfOrders(curr.Orders, symbol) {
		o := curr.Orders[t]
		old, ok := prev.Orders[t]
		if !ok {
			created = append(created, models.Event{
				Kind:   models.EventOrderCreated,
				Ticket: t,
				Order:  &o,
			})
			continue
		}
		changes := protectiveChanges(old.SL, old.TP, o.SL, o.TP)
		if len(changes) > 0 {
			modified = append(modified, models.Event{
				Kind:    models.EventOrderModified,
				Ticket:  t,
				Order:   &o,
				Changes: changes,
			})
		}
	}

	for _, t := range ticketsOfOrders(prev.Orders, symbol) {
		if _, ok := curr.Orders[t]; ok {
			continue
		}
		o := prev.Orders[t]
		deleted = append(deleted, models.Event{
			Kind:   models.EventOrderDeleted,
			Ticket: t,
			Order:  &o,
		})
	}

	return append(append(created, modified...), deleted...)
}

func diffPositions(prev, curr models.Snapshot, symbol string, point float64) []models.Event {
	var opened, changed, closed []models.Event

	for _, t := range ticketsOfPositions(curr.Positions, symbol) {
		p := curr.Positions[t]
		old, ok := prev.Positions[t]
		if !ok {
			opened = append(opened, models.Event{
				Kind:     models.EventPositionOpened,
				Ticket:   t,
				Position: &p,
			})
			continue
		}

		// SL/TP и объём — независимые проверки: за один цикл по одному
		// тикету могут уйти оба события.
		if chs := protectiveChanges(old.SL, old.TP, p.SL, p.TP); len(chs) > 0 {
			for i := range chs {
				if chs[i].Value != 0 {
					// дистанция от ТЕКУЩЕЙ цены входа до нового уровня
					chs[i].Pips = PipDistance(chs[i].Value, p.OpenPrice, point)
					chs[i].HasPips = true
				}
			}
			changed = append(changed, models.Event{
				Kind:     models.EventPositionModified,
				Ticket:   t,
				Position: &p,
				Changes:  chs,
			})
		}

		if p.Volume < old.Volume {
			pct, err := PartialClosePct(old.Volume, p.Volume)
			changed = append(changed, models.Event{
				Kind:       models.EventPositionPartialClose,
				Ticket:     t,
				Position:   &p,
				OldVolume:  old.Volume,
				ClosedPct:  pct,
				ClosedPips: PartialClosePips(p.Side, p.OpenPrice, p.CurrentPrice, point),
				PctErr:     err,
			})
		}
	}

	for _, t := range ticketsOfPositions(prev.Positions, symbol) {
		if _, ok := curr.Positions[t]; ok {
			continue
		}
		p := prev.Positions[t]
		closed = append(closed, models.Event{
			Kind:     models.EventPositionClosed,
			Ticket:   t,
			Position: &p,
			// лучшее, что у нас есть: последняя виденная цена из
			// предыдущего среза, в уведомлении помечаем как примерную
			ClosePrice: p.CurrentPrice,
			ClosedPips: PartialClosePips(p.Side, p.OpenPrice, p.CurrentPrice, point),
		})
	}

	// Внутри changed держим Modified раньше PartialClose одного тикета —
	// порядок EventKind это уже обеспечивает.
	sort.SliceStable(changed, func(i, j int) bool {
		if changed[i].Ticket != changed[j].Ticket {
			return changed[i].Ticket < changed[j].Ticket
		}
		return changed[i].Kind < changed[j].Kind
	})

	return append(append(opened, changed...), closed...)
}

// protectiveChanges сравнивает пары SL/TP; порядок фиксированный: SL, TP.
func protectiveChanges(oldSL, oldTP, newSL, newTP float64) []models.FieldChange {
	var chs []models.FieldChange
	if newSL != oldSL {
		chs = append(chs, models.FieldChange{Name: "SL", Value: newSL})
	}
	if newTP != oldTP {
		chs = append(chs, models.FieldChange{Name: "TP", Value: newTP})
	}
	return chs
}

func ticketsOfOrders(m map[int64]models.PendingOrder, symbol string) []int64 {
	out := make([]int64, 0, len(m))
	for t, o := range m {
		if o.Symbol == symbol {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ticketsOfPositions(m map[int64]models.Position, symbol string) []int64 {
	out := make([]int64, 0, len(m))
	for t, p := range m {
		if p.Symbol == symbol {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
