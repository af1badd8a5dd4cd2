package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ErrConnect classifies authentication and network failures while opening
// the database connection.
var ErrConnect = errors.New("database connection failed")

// Open configures a Postgres handle without touching the network. The tool
// drives one sequential flow, so the pool is pinned to a single connection;
// the verification queries then observe exactly the session the migration
// ran on.
func Open(dsn string) (*sql.DB, error) {
	d, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	d.SetMaxOpenConns(1)
	d.SetMaxIdleConns(1)
	d.SetConnMaxLifetime(30 * time.Minute)
	return d, nil
}

// Connect opens the handle and verifies it with a ping. The handle is closed
// again if the ping fails.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	d, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := d.PingContext(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return d, nil
}
