// internal/db/initdb.go
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"
)

// CreateDatabaseIfNotExists connects to the server's default postgres
// database and creates the target database when it is missing. Safe to call
// on every boot.
func CreateDatabaseIfNotExists(connString string) error {
	dbName, err := databaseName(connString)
	if err != nil {
		return fmt.Errorf("parsing connection string: %w", err)
	}

	rootConn, err := withDatabaseName(connString, "postgres")
	if err != nil {
		return fmt.Errorf("building root connection string: %w", err)
	}

	root, err := sql.Open("postgres", rootConn)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer root.Close()

	var exists bool
	err = root.QueryRow("SELECT true FROM pg_database WHERE datname = $1", dbName).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot be parameterized; pq.QuoteIdentifier-style
	// quoting keeps odd names from breaking the statement.
	if _, err := root.Exec(fmt.Sprintf(`CREATE DATABASE %q`, dbName)); err != nil {
		return fmt.Errorf("creating database %s: %w", dbName, err)
	}
	return nil
}

// databaseName pulls the database name out of either a postgres:// URL or a
// key=value connection string.
func databaseName(connString string) (string, error) {
	if isURLConn(connString) {
		u, err := url.Parse(connString)
		if err != nil {
			return "", err
		}
		name := strings.TrimPrefix(u.Path, "/")
		if name == "" {
			return "", errors.New("connection URL has no database path")
		}
		return name, nil
	}

	for _, pair := range strings.Fields(connString) {
		if name, ok := strings.CutPrefix(pair, "dbname="); ok {
			return name, nil
		}
	}
	return "", errors.New("connection string has no dbname")
}

// withDatabaseName rewrites the connection string to target another database
// on the same server.
func withDatabaseName(connString, name string) (string, error) {
	if isURLConn(connString) {
		u, err := url.Parse(connString)
		if err != nil {
			return "", err
		}
		u.Path = "/" + name
		return u.String(), nil
	}

	pairs := strings.Fields(connString)
	out := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if strings.HasPrefix(pair, "dbname=") {
			pair = "dbname=" + name
		}
		out = append(out, pair)
	}
	return strings.Join(out, " "), nil
}

func isURLConn(connString string) bool {
	return strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://")
}
