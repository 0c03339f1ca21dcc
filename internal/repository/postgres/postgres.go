// Package postgres is the Postgres-backed domain.Store. It mirrors the
// SQLite store table for table so either can sit behind the handlers.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/migrations"
	schema "github.com/msomdec/house-rentals/internal/repository/postgres/migrations"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// DB wraps a Postgres connection pool and implements domain.Store.
type DB struct {
	SqlDB *sql.DB
}

// New opens a Postgres connection pool for the given DSN and pings it.
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded Postgres migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB, schema.FS, migrations.Postgres)
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() domain.UserRepository       { return &userRepo{db: d.SqlDB} }
func (d *DB) Listings() domain.ListingRepository { return &listingRepo{db: d.SqlDB} }
func (d *DB) Profiles() domain.ProfileRepository { return &profileRepo{db: d.SqlDB} }
func (d *DB) Payments() domain.PaymentRepository { return &paymentRepo{db: d.SqlDB} }
func (d *DB) FileStore() domain.FileStore        { return &fileStore{db: d.SqlDB} }

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
