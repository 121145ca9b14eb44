package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"trade_watch/internal/models"
)

// Stdout — заглушка канала доставки для локальной отладки:
// если TELEGRAM_* не задан, уведомления просто пишутся в лог.
type Stdout struct{}

func NewStdout() *Stdout { return &Stdout{} }

func (s *Stdout) Notify(ctx context.Context, n models.Notification) error {
	var b strings.Builder
	for _, f := range n.Fields {
		fmt.Fprintf(&b, " %s=%s", f.Name, f.Value)
	}
	log.Printf("[NOTIFY] %s |%s", n.Title, b.String())
	return nil
}
