package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewSQLiteSource opens the SQLite database at path. The table is created
// when createSchema is set.
func NewSQLiteSource(ctx context.Context, path, table string, createSchema bool) (*SQLSource, error) {
	if path == "" {
		return nil, errors.New("sqlite route source: path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	src, err := newSQLSource(db, table, sqliteDialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if createSchema {
		if err := src.EnsureSchema(ctx); err != nil {
			if cerr := db.Close(); cerr != nil {
				return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
			}
			return nil, err
		}
	}
	return src, nil
}
