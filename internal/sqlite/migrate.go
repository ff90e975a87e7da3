package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// migrate brings the live schema in line with schemaDefinition.
//
// The migration is declarative: the target schema is created in a temporary in-memory database that is attached
// to the live one and the two sqlite_schema tables are diffed. Tables and columns are only ever added. A table or
// column that disappeared from the target schema is kept together with its data because the test log is
// append-only. Indexes and triggers carry no data and are synchronised exactly.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/
func (db *Database) migrate(ctx context.Context, schemaDefinition string) (err error) {
	start := time.Now()

	detach, err := db.attachSchemaTarget(ctx, schemaDefinition)
	if err != nil {
		return fmt.Errorf("attach schema target: %w", err)
	}
	defer detach()

	var tx *sql.Tx
	if tx, err = db.ReadWrite.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer db.rollback(ctx, tx)

	if err = db.createTables(ctx, tx); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if err = db.addColumns(ctx, tx); err != nil {
		return fmt.Errorf("add columns: %w", err)
	}
	for _, typ := range []schemaType{schemaTypeIndex, schemaTypeTrigger} {
		if err = db.syncSchema(ctx, tx, typ); err != nil {
			return fmt.Errorf("sync %s: %w", typ, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "migrated database", slog.Duration("duration", time.Since(start)))
	return nil
}

// attachSchemaTarget attaches an in-memory database initialised with schemaDefinition as schemaTarget. The
// returned function detaches it.
func (db *Database) attachSchemaTarget(ctx context.Context, schemaDefinition string) (func(), error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", rand.Text())
	target, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open schema target: %w", err)
	}
	// The shared cache keeps the in-memory database alive for as long as the attaching connection holds it.
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target", slog.Any("error", closeErr))
		}
	}()
	if _, err = target.ExecContext(ctx, schemaDefinition); err != nil {
		return nil, fmt.Errorf("create schema target: %w", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", dsn); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to detach schema target", slog.Any("error", detachErr))
		}
	}, nil
}

func (db *Database) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", slog.Any("error", err))
	}
}

func (db *Database) createTables(ctx context.Context, tx *sql.Tx) error {
	created, err := queryStrings(ctx, tx, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
         LEFT JOIN sqlite_schema AS live ON live.name = target.name AND live.type = target.type
WHERE target.type = 'table'
  AND live.type IS NULL
  AND target.name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return fmt.Errorf("query new tables: %w", err)
	}
	for _, query := range created {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", query))
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	var retired []string
	if retired, err = queryStrings(ctx, tx, `SELECT live.name
FROM sqlite_schema AS live
         LEFT JOIN schemaTarget.sqlite_schema AS target ON live.name = target.name AND live.type = target.type
WHERE live.type = 'table'
  AND target.type IS NULL
  AND live.name NOT LIKE 'sqlite_%'`); err != nil {
		return fmt.Errorf("query retired tables: %w", err)
	}
	for _, table := range retired {
		db.logger.LogAttrs(ctx, slog.LevelWarn, "table missing from schema is kept", slog.String("table", table))
	}
	return nil
}

type column struct {
	table        string
	name         string
	typ          string
	notNull      bool
	defaultValue sql.NullString
	primaryKey   int
}

func (c column) definition() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `"%s" %s`, c.name, c.typ)
	if c.notNull {
		sb.WriteString(" NOT NULL")
	}
	if c.defaultValue.Valid {
		sb.WriteString(" DEFAULT " + c.defaultValue.String)
	}
	return sb.String()
}

// addColumns adds the columns present in the target schema but missing from live tables. Columns that SQLite
// cannot add with ALTER TABLE make the migration fail instead of silently rebuilding the table.
func (db *Database) addColumns(ctx context.Context, tx *sql.Tx) (err error) {
	rows, err := tx.QueryContext(ctx, `SELECT t.name, target.name, target.type, target."notnull", target.dflt_value,
       target.pk
FROM schemaTarget.sqlite_schema AS t
         JOIN sqlite_schema AS live ON live.name = t.name AND live.type = 'table'
         JOIN PRAGMA_TABLE_INFO(t.name, 'schemaTarget') AS target
         LEFT JOIN PRAGMA_TABLE_INFO(t.name, 'main') AS existing ON existing.name = target.name
WHERE t.type = 'table'
  AND t.name NOT LIKE 'sqlite_%'
  AND existing.name IS NULL
ORDER BY t.name, target.cid`)
	if err != nil {
		return fmt.Errorf("query new columns: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var columns []column
	for rows.Next() {
		var c column
		if err = rows.Scan(&c.table, &c.name, &c.typ, &c.notNull, &c.defaultValue, &c.primaryKey); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, c)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	for _, c := range columns {
		if c.primaryKey > 0 || (c.notNull && !c.defaultValue.Valid) {
			return fmt.Errorf("column %s.%s cannot be added without rebuilding the table", c.table, c.name)
		}
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", c.table, c.definition())
		db.logger.LogAttrs(ctx, slog.LevelInfo, "adding column", slog.String("query", query))
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.name, err)
		}
	}
	return nil
}

type schemaType string

const (
	schemaTypeTrigger schemaType = "trigger"
	schemaTypeIndex   schemaType = "index"
)

// syncSchema drops entities of typ that are missing from or differ from the target schema and creates the
// missing ones.
func (db *Database) syncSchema(ctx context.Context, tx *sql.Tx, typ schemaType) error {
	logger := db.logger.With(slog.String("schemaType", string(typ)))

	stale, err := queryStrings(ctx, tx, `SELECT live.name
FROM sqlite_schema AS live
         LEFT JOIN schemaTarget.sqlite_schema AS target ON live.name = target.name AND live.type = target.type
WHERE live.type = ?
  AND live.name NOT LIKE 'sqlite_%'
  AND (target.type IS NULL OR live.sql <> target.sql)`, typ)
	if err != nil {
		return fmt.Errorf("query stale: %w", err)
	}
	for _, name := range stale {
		query := fmt.Sprintf(`DROP %s "%s"`, strings.ToUpper(string(typ)), name)
		logger.LogAttrs(ctx, slog.LevelInfo, "dropping", slog.String("query", query))
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}

	var missing []string
	if missing, err = queryStrings(ctx, tx, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
         LEFT JOIN sqlite_schema AS live ON live.name = target.name AND live.type = target.type
WHERE target.type = ?
  AND target.name NOT LIKE 'sqlite_%'
  AND live.type IS NULL`, typ); err != nil {
		return fmt.Errorf("query missing: %w", err)
	}
	for _, query := range missing {
		logger.LogAttrs(ctx, slog.LevelInfo, "creating", slog.String("query", query))
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create: %w", err)
		}
	}
	return nil
}

// queryStrings returns the single string column of every row of query.
func queryStrings(ctx context.Context, tx *sql.Tx, query string, args ...any) (_ []string, err error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()
	var results []string
	for rows.Next() {
		var result string
		if err = rows.Scan(&result); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
