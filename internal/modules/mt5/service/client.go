package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"trade_watch/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Client — клиент REST/WS-бриджа терминала MT5. Сам терминал ничего
// наружу не отдаёт, рядом с ним живёт мост, который проксирует
// ордера/позиции/параметры символов по HTTP.
type Client struct {
	cfg      *config.Config
	http     *http.Client
	wsDialer *websocket.Dialer
	base     string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: 10 * time.Second},
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		base:     "http://" + cfg.MT5.Addr,
	}
}

// Connect логинит мост в терминал. Ошибка здесь — фатальная:
// без авторизации мониторинг не стартует.
func (c *Client) Connect(ctx context.Context) error {
	body, err := sonic.Marshal(connectRequest{
		Login:    c.cfg.MT5.Login,
		Password: c.cfg.MT5.Password,
		Server:   c.cfg.MT5.Server,
	})
	if err != nil {
		return errors.Wrap(err, "marshal connect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/connect", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return errors.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}

	var out apiError
	if err := sonic.Unmarshal(rb, &out); err != nil {
		return errors.Wrap(err, "decode")
	}
	if !out.Ok {
		return errors.Errorf("mt5 connect: %s", out.Error)
	}
	return nil
}

// get — общий GET к бриджу с декодом через sonic.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if resp.StatusCode/100 != 2 {
		return errors.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	if err := sonic.Unmarshal(rb, out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}
