// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/listings/internal/idgen"
	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
	"github.com/alfredjeanlab/listings/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DefaultDistance is the search radius in miles used when a geo search
// gives no distance.
const DefaultDistance = 25.0

// Options tunes a PostgresStore. The zero value is usable.
type Options struct {
	Logger          *slog.Logger
	DefaultDistance float64       // miles; DefaultDistance when zero
	SlowQuery       time.Duration // 0 disables slow-query warnings
}

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db   *sql.DB
	opts Options
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string, opts Options) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return newStore(db, opts), nil
}

func newStore(db *sql.DB, opts Options) *PostgresStore {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DefaultDistance <= 0 {
		opts.DefaultDistance = DefaultDistance
	}
	return &PostgresStore{db: db, opts: opts}
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) queryConfig() queryConfig {
	return queryConfigFor(s.db, s.opts)
}

func queryConfigFor(db executor, opts Options) queryConfig {
	return queryConfig{
		db:              db,
		logger:          opts.Logger,
		defaultDistance: opts.DefaultDistance,
		slowQuery:       opts.SlowQuery,
	}
}

func (s *PostgresStore) NewListingQuery(user *model.User) query.ListingQuery {
	return newListingQuery(s.queryConfig(), "", user)
}

func (s *PostgresStore) NewAdvisorQuery(user *model.User) query.AdvisorQuery {
	return &advisorQuery{newListingQuery(s.queryConfig(), model.KindAdvisor, user)}
}

func (s *PostgresStore) NewCpaQuery(user *model.User) query.CpaQuery {
	return &cpaQuery{newListingQuery(s.queryConfig(), model.KindCpa, user)}
}

func (s *PostgresStore) CreateListing(ctx context.Context, listing *model.Listing) error {
	return createListing(ctx, s.db, listing)
}

func (s *PostgresStore) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	return queryGetListing(ctx, s.db, id)
}

func (s *PostgresStore) SetPlace(ctx context.Context, place *model.Place) error {
	return querySetPlace(ctx, s.db, place)
}

func (s *PostgresStore) GetPlace(ctx context.Context, name string) (*model.Place, error) {
	return queryGetPlace(ctx, s.db, name)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx, opts: s.opts}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// createListing fills in the ID and timestamps when missing, validates, and
// inserts the listing.
func createListing(ctx context.Context, db executor, l *model.Listing) error {
	if l.ID == "" {
		id, err := idgen.Generate()
		if err != nil {
			return err
		}
		l.ID = id
	}
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	if l.Published && l.PublishedAt == nil {
		l.PublishedAt = &now
	}
	if err := model.ValidateListing(l); err != nil {
		return err
	}
	if err := queryCreateListing(ctx, db, l); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx   *sql.Tx
	opts Options
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) NewListingQuery(user *model.User) query.ListingQuery {
	return newListingQuery(queryConfigFor(s.tx, s.opts), "", user)
}

func (s *txStore) NewAdvisorQuery(user *model.User) query.AdvisorQuery {
	return &advisorQuery{newListingQuery(queryConfigFor(s.tx, s.opts), model.KindAdvisor, user)}
}

func (s *txStore) NewCpaQuery(user *model.User) query.CpaQuery {
	return &cpaQuery{newListingQuery(queryConfigFor(s.tx, s.opts), model.KindCpa, user)}
}

func (s *txStore) CreateListing(ctx context.Context, listing *model.Listing) error {
	return createListing(ctx, s.tx, listing)
}

func (s *txStore) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	return queryGetListing(ctx, s.tx, id)
}

func (s *txStore) SetPlace(ctx context.Context, place *model.Place) error {
	return querySetPlace(ctx, s.tx, place)
}

func (s *txStore) GetPlace(ctx context.Context, name string) (*model.Place, error) {
	return queryGetPlace(ctx, s.tx, name)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
