package state

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/llehouerou/zeedle/internal/catalog"
	dbutil "github.com/llehouerou/zeedle/internal/db"
)

// MaxHistoryRows bounds the stored plays; older rows are pruned on insert.
const MaxHistoryRows = 5000

// Play is one stored play.
type Play struct {
	ID       int64
	Session  string
	Path     string
	Title    string
	Artist   string
	Trigger  string
	PlayedAt time.Time
}

// RecordPlay stores a play in the current session.
func (m *Manager) RecordPlay(ctx context.Context, t catalog.Track, trigger string) error {
	return recordPlay(ctx, m.db, m.session, t, trigger, time.Now(), m.keep)
}

// Recent returns up to limit plays, newest first.
func (m *Manager) Recent(ctx context.Context, limit int) ([]Play, error) {
	return recentPlays(ctx, m.db, limit)
}

// SeedHistory returns the last limit plays, oldest first, resolved against
// cat. Plays whose file is no longer in the catalog are dropped.
func (m *Manager) SeedHistory(ctx context.Context, cat *catalog.Catalog, limit int) ([]catalog.Track, error) {
	plays, err := recentPlays(ctx, m.db, limit)
	if err != nil {
		return nil, err
	}
	return resolvePlays(plays, cat), nil
}

func recordPlay(ctx context.Context, db *sql.DB, session string, t catalog.Track, trigger string, at time.Time, keep int) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO play_history (session, path, title, artist, trigger_source, played_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, session, t.Path, t.Title, dbutil.NullString(t.Artist), trigger, at.UnixMilli())
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			DELETE FROM play_history
			WHERE id <= (SELECT id FROM play_history ORDER BY id DESC LIMIT 1 OFFSET ?)
		`, keep)
		return err
	})
}

func recentPlays(ctx context.Context, db *sql.DB, limit int) ([]Play, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, session, path, title, artist, trigger_source, played_at
		FROM play_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var artist sql.NullString
		var playedAt int64
		if err := rows.Scan(&p.ID, &p.Session, &p.Path, &p.Title, &artist, &p.Trigger, &playedAt); err != nil {
			return nil, err
		}
		p.Artist = dbutil.NullStringValue(artist)
		p.PlayedAt = dbutil.UnixMilli(playedAt)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// resolvePlays maps newest-first plays onto catalog tracks, oldest first.
func resolvePlays(plays []Play, cat *catalog.Catalog) []catalog.Track {
	tracks := make([]catalog.Track, 0, len(plays))
	for _, p := range slices.Backward(plays) {
		if i := cat.IndexOf(p.Path); i >= 0 {
			t, _ := cat.At(i)
			tracks = append(tracks, t)
		}
	}
	return tracks
}
