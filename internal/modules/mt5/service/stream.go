package service

import (
	"context"
	"log"
	"time"
)

// Hints подписывается на WS-канал бриджа, куда тот кидает сигнал
// "на счёте что-то поменялось". Это только будильник для опросчика:
// полный срез всё равно забирается по HTTP. Если WS лежит — не страшно,
// цикл работает по своему таймеру.
func (c *Client) Hints(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}

			conn, _, err := c.wsDialer.DialContext(ctx, "ws://"+c.cfg.MT5.Addr+"/stream", nil)
			if err != nil {
				log.Printf("[MT5 WS] dial: %v — повтор через 5s", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
				continue
			}
			log.Printf("[MT5 WS] подключились к %s", c.cfg.MT5.Addr)

			// закрываем сокет при отмене, чтобы ReadMessage отлип
			done := make(chan struct{})
			go func() {
				select {
				case <-ctx.Done():
					_ = conn.Close()
				case <-done:
				}
			}()

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					log.Printf("[MT5 WS] read: %v — реконнект", err)
					break
				}
				select {
				case out <- struct{}{}:
				default: // будильник уже взведён
				}
			}
			close(done)
			_ = conn.Close()
		}
	}()

	return out
}
