package service

import (
	"context"

	"trade_watch/internal/models"

	"github.com/pkg/errors"
)

// Positions — открытые позиции счёта, все символы.
func (c *Client) Positions(ctx context.Context) (map[int64]models.Position, error) {
	var resp positionsResponse
	if err := c.get(ctx, "/positions", &resp); err != nil {
		return nil, errors.Wrap(err, "mt5 positions")
	}
	if !resp.Ok {
		return nil, errors.Errorf("mt5 positions: %s", resp.Error)
	}

	out := make(map[int64]models.Position, len(resp.Positions))
	for _, d := range resp.Positions {
		out[d.Ticket] = models.Position{
			Ticket:       d.Ticket,
			Symbol:       d.Symbol,
			Side:         models.PositionSideFromCode(d.Type),
			OpenPrice:    d.PriceOpen,
			CurrentPrice: d.PriceCurrent,
			Volume:       d.Volume,
			SL:           d.SL,
			TP:           d.TP,
		}
	}
	return out, nil
}
