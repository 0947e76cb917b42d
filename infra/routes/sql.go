package routes

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/routeopt/fleetsim/core/model"
	coreroutes "github.com/routeopt/fleetsim/core/routes"
)

// DefaultTable is the table queried when none is configured.
const DefaultTable = "routes"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type dialect struct {
	name        string
	placeholder func(n int) string
	floatType   string
}

var (
	sqliteDialect   = dialect{name: "sqlite", placeholder: func(int) string { return "?" }, floatType: "REAL"}
	postgresDialect = dialect{name: "postgres", placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }, floatType: "DOUBLE PRECISION"}
)

// SQLSource reads route rows from a database table with the columns
// source, destination, carrier, equipment, distance_miles, total_seats, asm.
type SQLSource struct {
	db      *sql.DB
	table   string
	dialect dialect
}

func newSQLSource(db *sql.DB, table string, d dialect) (*SQLSource, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%s route source: invalid table name %q", d.name, table)
	}
	return &SQLSource{db: db, table: table, dialect: d}, nil
}

// EnsureSchema creates the route table when missing.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	ft := s.dialect.floatType
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        source TEXT NOT NULL,
        destination TEXT NOT NULL,
        carrier TEXT,
        equipment TEXT,
        distance_miles %s,
        total_seats %s,
        asm %s
    )`, s.table, ft, ft, ft))
	return err
}

// Insert appends rows inside a single transaction.
func (s *SQLSource) Insert(ctx context.Context, rows []model.RouteRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	p := s.dialect.placeholder
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (source, destination, carrier, equipment, distance_miles, total_seats, asm) VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		s.table, p(1), p(2), p(3), p(4), p(5), p(6), p(7)))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Source, r.Destination, r.Carrier, r.Equipment, r.DistanceMiles, r.TotalSeats, r.ASM); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert route %s-%s: %w", r.Source, r.Destination, err)
		}
	}
	return tx.Commit()
}

// routeOrder sorts on every returned column so the row order, and with it
// the route limit cut among equal ASM rows, is the same on every read.
const routeOrder = ` ORDER BY COALESCE(asm, 0) DESC, source, destination, COALESCE(carrier, ''),
        COALESCE(equipment, ''), COALESCE(distance_miles, 0), COALESCE(total_seats, 0)`

// Routes implements routes.Source. Rows come back by ASM descending, ties
// ordered by source, destination, carrier and equipment.
func (s *SQLSource) Routes(ctx context.Context, q coreroutes.Query) ([]model.RouteRow, error) {
	query := fmt.Sprintf(`SELECT source, destination, COALESCE(carrier, ''), COALESCE(equipment, ''),
        COALESCE(distance_miles, 0), COALESCE(total_seats, 0), COALESCE(asm, 0) FROM %s`, s.table)
	var args []any
	if q.Airline != "" {
		query += fmt.Sprintf(` WHERE UPPER(TRIM(carrier)) = UPPER(%s)`, s.dialect.placeholder(1))
		args = append(args, q.Airline)
	}
	query += routeOrder
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s route query: %w", s.dialect.name, err)
	}
	defer rows.Close()
	var out []model.RouteRow
	for rows.Next() {
		var r model.RouteRow
		if err := rows.Scan(&r.Source, &r.Destination, &r.Carrier, &r.Equipment, &r.DistanceMiles, &r.TotalSeats, &r.ASM); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
