package pg

import (
	"context"
	"fmt"
	"sync"

	"trade_watch/internal/models"
	"trade_watch/pkg/db"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

const (
	sqlEnsure = `
CREATE TABLE IF NOT EXISTS chat_settings (
    id         BIGSERIAL PRIMARY KEY,
    chatid     BIGINT NOT NULL UNIQUE,
    settings   JSONB  NOT NULL DEFAULT '{}'::jsonb,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	sqlGet    = `SELECT id, settings FROM chat_settings WHERE chatid = $1`
	sqlUpsert = `
INSERT INTO chat_settings (chatid, settings) VALUES ($1, $2)
ON CONFLICT (chatid) DO UPDATE SET settings = $2, updated_at = now()`
)

// Settings — настройки чата в pg + живой кеш в памяти.
// Грузится один раз на старте, дальше меняется только командами
// /mute /unmute.
type Settings struct {
	db     *db.PgTxManager
	chatID int64

	mu   sync.RWMutex
	data models.WatchSettings
}

// NewSettings instance
func NewSettings(manager *db.PgTxManager) *Settings {
	return &Settings{
		db: manager,
	}
}

// Load достаёт настройки чата; если строки нет — создаёт с дефолтами.
func (s *Settings) Load(ctx context.Context, chatID int64, def models.WatchSettings) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Settings.Load: %w", err)
		}
	}()

	s.chatID = chatID

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctxTx, sqlEnsure); err != nil {
			return err
		}

		var (
			id   int64
			blob []byte
		)
		err := tx.QueryRow(ctxTx, sqlGet, chatID).Scan(&id, &blob)
		if err == pgx.ErrNoRows {
			data, err := sonic.Marshal(def)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctxTx, sqlUpsert, chatID, data); err != nil {
				return err
			}
			s.mu.Lock()
			s.data = def
			s.mu.Unlock()
			return nil
		}
		if err != nil {
			return err
		}

		var t models.WatchSettings
		if err := sonic.Unmarshal(blob, &t); err != nil {
			return err
		}
		s.mu.Lock()
		s.data = t
		s.mu.Unlock()
		return nil
	})
}

// Snapshot — копия текущих настроек.
func (s *Settings) Snapshot() models.WatchSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.data
	out.Muted = make(map[string]bool, len(s.data.Muted))
	for k, v := range s.data.Muted {
		out.Muted[k] = v
	}
	return out
}

func (s *Settings) IsMuted(kind models.EventKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Muted[kind.String()]
}

// SetMuted переключает фильтр и сразу сохраняет блоб в pg.
func (s *Settings) SetMuted(ctx context.Context, key string, muted bool) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Settings.SetMuted: %w", err)
		}
	}()

	s.mu.Lock()
	if s.data.Muted == nil {
		s.data.Muted = make(map[string]bool)
	}
	if muted {
		s.data.Muted[key] = true
	} else {
		delete(s.data.Muted, key)
	}
	data, err := sonic.Marshal(s.data)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, sqlUpsert, s.chatID, data)
		return err
	})
}
