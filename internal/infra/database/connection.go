package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// NewDBConnection opens the connection, configures the pool and proves it
// with a ping before anyone depends on it.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// mapError translates driver errors into the gateway taxonomy. A missing row
// is ErrNotFound; anything else coming out of the driver is a backend
// failure, so callers can tell "retry" from "404".
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %v", op, entity.ErrBackendUnavailable, err)
}
