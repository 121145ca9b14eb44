package service

import (
	"fmt"
	"strings"

	"trade_watch/internal/models"
)

// severityEmoji — как красим заголовок в чате.
func severityEmoji(s models.Severity) string {
	switch s {
	case models.SeveritySuccess:
		return "✅"
	case models.SeverityDanger:
		return "🔴"
	case models.SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// renderNotification — Markdown-текст уведомления: заголовок + поля
// строго в том порядке, в котором их собрал форматтер.
func renderNotification(n models.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n", severityEmoji(n.Severity), n.Title)
	for _, f := range n.Fields {
		fmt.Fprintf(&b, "%s: `%s`\n", f.Name, f.Value)
	}
	return b.String()
}
