// Package sqlcatalog loads catalog schema snapshots from live databases.
//
// It introspects column nullability from information_schema (MySQL,
// PostgreSQL) or sqlite_master plus PRAGMA table_info (SQLite). Views are
// loaded as ordinary relations with the nullability the database reports for
// them; databases generally report view columns as nullable, which makes the
// verifier conservative — never unsound — when a query joins through a view.
package sqlcatalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/fkjoin/catalog"
)

// Supported dialects. The constants double as database/sql driver names for
// go-sql-driver/mysql, lib/pq, and modernc.org/sqlite.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// mysqlColumns and postgresColumns list every column of the current schema
// with its nullability, in relation order.
const (
	mysqlColumns = `SELECT TABLE_NAME, COLUMN_NAME, IS_NULLABLE
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = (SELECT DATABASE())
ORDER BY TABLE_NAME, ORDINAL_POSITION`

	postgresColumns = `SELECT table_name, column_name, is_nullable
FROM information_schema.columns
WHERE table_schema = current_schema()
ORDER BY table_name, ordinal_position`

	sqliteRelations = `SELECT name FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`
)

// Open opens a connection for the given dialect, loads a schema snapshot,
// and closes the connection. The caller must have registered the matching
// driver.
func Open(ctx context.Context, dialect, source string) (*catalog.Schema, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, fmt.Errorf("sqlcatalog: opening %s database: %w", dialect, err)
	}
	defer db.Close()
	return Load(ctx, db, dialect)
}

// Load introspects the database's current schema into a snapshot.
func Load(ctx context.Context, db *sql.DB, dialect string) (*catalog.Schema, error) {
	switch dialect {
	case MySQL:
		return loadColumns(ctx, db, mysqlColumns)
	case Postgres:
		return loadColumns(ctx, db, postgresColumns)
	case SQLite:
		return loadSQLite(ctx, db)
	default:
		return nil, fmt.Errorf("sqlcatalog: unsupported dialect %q", dialect)
	}
}

// loadColumns builds a snapshot from an information_schema column listing.
func loadColumns(ctx context.Context, db *sql.DB, query string) (*catalog.Schema, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlcatalog: querying information_schema: %w", err)
	}
	defer rows.Close()

	s := catalog.New()
	var current catalog.Table
	for rows.Next() {
		var table, column, nullable string
		if err := rows.Scan(&table, &column, &nullable); err != nil {
			return nil, fmt.Errorf("sqlcatalog: scanning information_schema row: %w", err)
		}
		if table != current.Name {
			if current.Name != "" {
				s.AddTable(current)
			}
			current = catalog.Table{Name: table}
		}
		current.Columns = append(current.Columns, catalog.Column{
			Name:     column,
			Nullable: strings.EqualFold(nullable, "YES"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlcatalog: reading information_schema: %w", err)
	}
	if current.Name != "" {
		s.AddTable(current)
	}
	return s, nil
}

// loadSQLite builds a snapshot from sqlite_master and PRAGMA table_info.
func loadSQLite(ctx context.Context, db *sql.DB) (*catalog.Schema, error) {
	rows, err := db.QueryContext(ctx, sqliteRelations)
	if err != nil {
		return nil, fmt.Errorf("sqlcatalog: querying sqlite_master: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlcatalog: scanning sqlite_master row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("sqlcatalog: reading sqlite_master: %w", err)
	}
	rows.Close()

	s := catalog.New()
	for _, name := range names {
		t, err := sqliteTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		s.AddTable(t)
	}
	return s, nil
}

func sqliteTable(ctx context.Context, db *sql.DB, name string) (catalog.Table, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(name)+")")
	if err != nil {
		return catalog.Table{}, fmt.Errorf("sqlcatalog: table_info(%s): %w", name, err)
	}
	defer rows.Close()

	t := catalog.Table{Name: name}
	for rows.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return catalog.Table{}, fmt.Errorf("sqlcatalog: scanning table_info(%s): %w", name, err)
		}
		t.Columns = append(t.Columns, catalog.Column{
			Name:     colName,
			Nullable: notNull == 0,
		})
	}
	if err := rows.Err(); err != nil {
		return catalog.Table{}, fmt.Errorf("sqlcatalog: reading table_info(%s): %w", name, err)
	}
	return t, nil
}

// quoteIdent quotes an identifier for interpolation into a PRAGMA statement,
// which does not accept bind parameters.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
