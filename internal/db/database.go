// internal/db/database.go
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Database wraps sql.DB so callers can hang app-level helpers off it
// without re-plumbing the pool.
type Database struct {
	*sql.DB
}

// New opens a postgres pool and verifies the connection.
func New(connString string) (*Database, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Database{db}, nil
}

func (db *Database) Close() error {
	return db.DB.Close()
}
