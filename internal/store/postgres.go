package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/rock-salt/match-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it,
// which is how the postgres tests run without a live database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS riders (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS venues (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_riders_created_at ON riders(created_at);
CREATE INDEX IF NOT EXISTS idx_venues_created_at ON venues(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) PutRider(ctx context.Context, r model.Rider) (model.Rider, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if err := s.putRecord(ctx, "riders", r.ID, r); err != nil {
		return model.Rider{}, eris.Wrap(err, "postgres: put rider")
	}
	return r, nil
}

func (s *PostgresStore) GetRider(ctx context.Context, id string) (*model.Rider, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT record FROM riders WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get rider %s", id)
	}
	var r model.Rider
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal rider")
	}
	return &r, nil
}

func (s *PostgresStore) ListRiders(ctx context.Context, filter ListFilter) ([]model.Rider, error) {
	raws, err := s.listRecords(ctx, "riders", filter)
	if err != nil {
		return nil, err
	}
	riders := make([]model.Rider, 0, len(raws))
	for _, raw := range raws {
		var r model.Rider
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal rider")
		}
		riders = append(riders, r)
	}
	return riders, nil
}

func (s *PostgresStore) PutVenue(ctx context.Context, v model.Venue) (model.Venue, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if err := s.putRecord(ctx, "venues", v.ID, v); err != nil {
		return model.Venue{}, eris.Wrap(err, "postgres: put venue")
	}
	return v, nil
}

func (s *PostgresStore) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT record FROM venues WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get venue %s", id)
	}
	var v model.Venue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal venue")
	}
	return &v, nil
}

func (s *PostgresStore) ListVenues(ctx context.Context, filter ListFilter) ([]model.Venue, error) {
	raws, err := s.listRecords(ctx, "venues", filter)
	if err != nil {
		return nil, err
	}
	venues := make([]model.Venue, 0, len(raws))
	for _, raw := range raws {
		var v model.Venue
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal venue")
		}
		venues = append(venues, v)
	}
	return venues, nil
}

func (s *PostgresStore) putRecord(ctx context.Context, table, id string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "marshal record")
	}
	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+table+` (id, record, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET record = $2, updated_at = $4`,
		id, data, now, now,
	)
	return err
}

func (s *PostgresStore) listRecords(ctx context.Context, table string, filter ListFilter) ([][]byte, error) {
	query := `SELECT record FROM ` + table + ` ORDER BY created_at, id`
	args := []any{}
	argIdx := 1

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argIdx)
		args = append(args, filter.Limit)
		argIdx++
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET $%d`, argIdx)
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list %s", table)
	}
	defer rows.Close()

	var raws [][]byte
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrapf(err, "postgres: scan %s row", table)
		}
		raws = append(raws, raw)
	}
	return raws, eris.Wrapf(rows.Err(), "postgres: list %s iterate", table)
}
