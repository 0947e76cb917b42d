package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// NewPostgresSource connects to PostgreSQL using dsn and checks the
// connection.
func NewPostgresSource(ctx context.Context, dsn, table string) (*SQLSource, error) {
	if dsn == "" {
		return nil, errors.New("postgres route source: dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}
	return newSQLSource(db, table, postgresDialect)
}
