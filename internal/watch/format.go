package watch

import (
	"fmt"
	"strconv"

	"trade_watch/internal/models"
)

// Format собирает уведомление по событию: заголовок, severity и
// фиксированный порядок полей (символ, тип/цена, потом метрики).
func Format(e models.Event) models.Notification {
	switch e.Kind {
	case models.EventOrderCreated:
		return models.Notification{
			Title:    "Pending Order Placed",
			Severity: sideSeverity(e.Order.Kind.IsBuy(), e.Order.Kind == models.OrderKindUnknown),
			Fields:   orderFields(e.Order, true),
		}

	case models.EventOrderModified:
		n := models.Notification{
			Title:    "Pending Order Modified",
			Severity: models.SeverityInfo,
			Fields:   orderFields(e.Order, false),
		}
		n.Fields = append(n.Fields, changeFields(e.Changes)...)
		return n

	case models.EventOrderDeleted:
		return models.Notification{
			Title:    "Pending Order Deleted",
			Severity: models.SeverityDanger,
			Fields:   orderFields(e.Order, false),
		}

	case models.EventPositionOpened:
		p := e.Position
		n := models.Notification{
			Title:    "Position Opened",
			Severity: sideSeverity(p.Side == models.SideBuy, false),
			Fields: []models.Field{
				{Name: "Symbol", Value: p.Symbol},
				{Name: "Type", Value: p.Side.String()},
				{Name: "Price", Value: price(p.OpenPrice)},
				{Name: "Volume", Value: price(p.Volume)},
			},
		}
		if p.SL != 0 {
			n.Fields = append(n.Fields, models.Field{Name: "SL", Value: price(p.SL)})
		}
		if p.TP != 0 {
			n.Fields = append(n.Fields, models.Field{Name: "TP", Value: price(p.TP)})
		}
		return n

	case models.EventPositionModified:
		p := e.Position
		n := models.Notification{
			Title:    "Position Modified",
			Severity: models.SeverityInfo,
			Fields: []models.Field{
				{Name: "Symbol", Value: p.Symbol},
				{Name: "Type", Value: p.Side.String()},
				{Name: "Entry", Value: price(p.OpenPrice)},
			},
		}
		n.Fields = append(n.Fields, changeFields(e.Changes)...)
		return n

	case models.EventPositionPartialClose:
		p := e.Position
		closed := "n/a (old volume 0)"
		if e.PctErr == nil {
			closed = fmt.Sprintf("%.2f%%", e.ClosedPct)
		}
		return models.Notification{
			Title:    "Position Partially Closed",
			Severity: models.SeverityWarning,
			Fields: []models.Field{
				{Name: "Symbol", Value: p.Symbol},
				{Name: "Type", Value: p.Side.String()},
				{Name: "Closed", Value: closed},
				{Name: "Approx. Pips", Value: pips(e.ClosedPips)},
				{Name: "Volume", Value: fmt.Sprintf("%s (was %s)", price(p.Volume), price(e.OldVolume))},
			},
		}

	case models.EventPositionClosed:
		p := e.Position
		return models.Notification{
			Title:    "Position Closed",
			Severity: models.SeverityDanger,
			Fields: []models.Field{
				{Name: "Symbol", Value: p.Symbol},
				{Name: "Type", Value: p.Side.String()},
				// фактической цены исполнения в срезе нет — честно
				// показываем последнюю виденную как примерную
				{Name: "Close Price", Value: fmt.Sprintf("~%s (approx.)", price(e.ClosePrice))},
				{Name: "Volume", Value: price(p.Volume)},
				{Name: "Approx. Pips", Value: pips(e.ClosedPips)},
			},
		}
	}

	return models.Notification{Title: "Unknown Event", Severity: models.SeverityInfo}
}

func orderFields(o *models.PendingOrder, withLevels bool) []models.Field {
	fs := []models.Field{
		{Name: "Symbol", Value: o.Symbol},
		{Name: "Type", Value: o.Kind.String()},
		{Name: "Price", Value: price(o.OpenPrice)},
	}
	if withLevels {
		if o.SL != 0 {
			fs = append(fs, models.Field{Name: "SL", Value: price(o.SL)})
		}
		if o.TP != 0 {
			fs = append(fs, models.Field{Name: "TP", Value: price(o.TP)})
		}
	}
	return fs
}

func changeFields(chs []models.FieldChange) []models.Field {
	fs := make([]models.Field, 0, len(chs))
	for _, ch := range chs {
		switch {
		case ch.Value == 0:
			fs = append(fs, models.Field{Name: "New " + ch.Name, Value: "removed"})
		case ch.HasPips:
			fs = append(fs, models.Field{
				Name:  "New " + ch.Name,
				Value: fmt.Sprintf("%s (%s pips from entry)", price(ch.Value), pips(ch.Pips)),
			})
		default:
			fs = append(fs, models.Field{Name: "New " + ch.Name, Value: price(ch.Value)})
		}
	}
	return fs
}

func sideSeverity(buy, unknown bool) models.Severity {
	if unknown {
		return models.SeverityInfo
	}
	if buy {
		return models.SeveritySuccess
	}
	return models.SeverityDanger
}

func price(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func pips(v float64) string { return fmt.Sprintf("%+.2f", v) }
