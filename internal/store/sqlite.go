package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/rock-salt/match-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS riders (
	id         TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS venues (
	id         TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) PutRider(ctx context.Context, r model.Rider) (model.Rider, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if err := s.putRecord(ctx, "riders", r.ID, r); err != nil {
		return model.Rider{}, eris.Wrap(err, "sqlite: put rider")
	}
	return r, nil
}

func (s *SQLiteStore) GetRider(ctx context.Context, id string) (*model.Rider, error) {
	var r model.Rider
	if err := s.getRecord(ctx, "riders", id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLiteStore) ListRiders(ctx context.Context, filter ListFilter) ([]model.Rider, error) {
	raws, err := s.listRecords(ctx, "riders", filter)
	if err != nil {
		return nil, err
	}
	riders := make([]model.Rider, 0, len(raws))
	for _, raw := range raws {
		var r model.Rider
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal rider")
		}
		riders = append(riders, r)
	}
	return riders, nil
}

func (s *SQLiteStore) PutVenue(ctx context.Context, v model.Venue) (model.Venue, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if err := s.putRecord(ctx, "venues", v.ID, v); err != nil {
		return model.Venue{}, eris.Wrap(err, "sqlite: put venue")
	}
	return v, nil
}

func (s *SQLiteStore) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	var v model.Venue
	if err := s.getRecord(ctx, "venues", id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *SQLiteStore) ListVenues(ctx context.Context, filter ListFilter) ([]model.Venue, error) {
	raws, err := s.listRecords(ctx, "venues", filter)
	if err != nil {
		return nil, err
	}
	venues := make([]model.Venue, 0, len(raws))
	for _, raw := range raws {
		var v model.Venue
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal venue")
		}
		venues = append(venues, v)
	}
	return venues, nil
}

func (s *SQLiteStore) putRecord(ctx context.Context, table, id string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "marshal record")
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (id, record, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		id, string(data), now, now)
	return err
}

func (s *SQLiteStore) getRecord(ctx context.Context, table, id string, dest any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM `+table+` WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return eris.Wrapf(err, "sqlite: get from %s", table)
	}
	return eris.Wrap(json.Unmarshal([]byte(raw), dest), "sqlite: unmarshal record")
}

func (s *SQLiteStore) listRecords(ctx context.Context, table string, filter ListFilter) ([][]byte, error) {
	query := `SELECT record FROM ` + table + ` ORDER BY created_at, id`
	var args []any
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list %s", table)
	}
	defer rows.Close()

	var raws [][]byte
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s row", table)
		}
		raws = append(raws, []byte(raw))
	}
	return raws, eris.Wrapf(rows.Err(), "sqlite: iterate %s", table)
}
