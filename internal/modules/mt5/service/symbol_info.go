package service

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// Point — размер пункта инструмента. Кешировать на каждый цикл опроса
// должен вызывающий: на сущность дергать это незачем.
func (c *Client) Point(ctx context.Context, symbol string) (float64, error) {
	var resp symbolInfoResponse
	if err := c.get(ctx, "/symbol_info?symbol="+url.QueryEscape(symbol), &resp); err != nil {
		return 0, errors.Wrap(err, "mt5 symbol info")
	}
	if !resp.Ok {
		return 0, errors.Errorf("mt5 symbol info %s: %s", symbol, resp.Error)
	}
	if resp.Info.Point <= 0 {
		return 0, errors.Errorf("mt5 symbol info %s: point=%v", symbol, resp.Info.Point)
	}
	return resp.Info.Point, nil
}
