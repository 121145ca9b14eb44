package models

import "time"

// WatchSettings — настройки чата, хранятся в pg одним json-блобом.
// Пустое значение = берём из конфига.
type WatchSettings struct {
	Symbol       string          `json:"symbol,omitempty"`
	PollInterval time.Duration   `json:"poll_interval,omitempty"`
	Muted        map[string]bool `json:"muted,omitempty"` // ключ — EventKind.String()
}

type ChatSettings struct {
	ID       int64
	ChatID   int64
	Settings WatchSettings
}

func (s *WatchSettings) IsMuted(kind EventKind) bool {
	if s == nil || s.Muted == nil {
		return false
	}
	return s.Muted[kind.String()]
}
