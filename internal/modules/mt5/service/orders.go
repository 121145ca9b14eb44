package service

import (
	"context"

	"trade_watch/internal/models"

	"github.com/pkg/errors"
)

// Orders — текущие отложенные ордера счёта, все символы.
func (c *Client) Orders(ctx context.Context) (map[int64]models.PendingOrder, error) {
	var resp ordersResponse
	if err := c.get(ctx, "/orders", &resp); err != nil {
		return nil, errors.Wrap(err, "mt5 orders")
	}
	if !resp.Ok {
		return nil, errors.Errorf("mt5 orders: %s", resp.Error)
	}

	out := make(map[int64]models.PendingOrder, len(resp.Orders))
	for _, d := range resp.Orders {
		out[d.Ticket] = models.PendingOrder{
			Ticket:    d.Ticket,
			Symbol:    d.Symbol,
			Kind:      models.OrderKindFromCode(d.Type),
			OpenPrice: d.PriceOpen,
			SL:        d.SL,
			TP:        d.TP,
		}
	}
	return out, nil
}
