// Package store persists rider and venue records. The matching engine never
// touches it; commands load candidates here and hand them to the engine as
// in-memory values.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/rock-salt/match-cli/internal/config"
	"github.com/rock-salt/match-cli/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = eris.New("store: record not found")

// ListFilter specifies pagination for listing records.
type ListFilter struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the persistence interface for rider and venue records.
type Store interface {
	// Riders
	PutRider(ctx context.Context, r model.Rider) (model.Rider, error)
	GetRider(ctx context.Context, id string) (*model.Rider, error)
	ListRiders(ctx context.Context, filter ListFilter) ([]model.Rider, error)

	// Venues
	PutVenue(ctx context.Context, v model.Venue) (model.Venue, error)
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	ListVenues(ctx context.Context, filter ListFilter) ([]model.Venue, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
