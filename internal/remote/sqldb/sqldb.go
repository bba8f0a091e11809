// Package sqldb implements the remote data service contract over database/sql.
// It backs local and dev deployments with SQLite (modernc.org/sqlite) and can
// talk straight to the Postgres behind a hosted project via the pgx stdlib
// driver. Rows are exchanged wire-cased, exactly as the HTTP service would
// return them.
//
// The auth subsystem is self-contained: a users table with bcrypt password
// hashes and HS256 session tokens. Journal entries are scoped to the current
// session's user on read, mirroring the hosted service's row-level policy.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/remote"
	"github.com/hanifgold/sitecms/internal/remote/sqldb/migrations"
)

// Dialect selects the SQL flavor.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// collections maps every known collection to the set of columns holding
// JSON-encoded values (stored as TEXT, decoded on read).
var collections = map[string]map[string]bool{
	remote.CollectionProjects:     {},
	remote.CollectionServices:     {"features": true},
	remote.CollectionTestimonials: {},
	remote.CollectionBlogPosts:    {},
	remote.CollectionSiteConfig:   {},
	remote.CollectionJournal:      {},
}

// Client implements remote.Client over a SQL database.
type Client struct {
	remote.Notifier

	db       *sql.DB
	dialect  Dialect
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger

	mu      sync.Mutex
	session *remote.Session
}

// Open connects to the database and, for the sqlite dialect, applies the
// embedded migrations. The Postgres schema is owned by the hosted project
// and never migrated from here.
func Open(ctx context.Context, dialect Dialect, dsn, secret string, tokenTTL time.Duration, log logging.Logger) (*Client, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if dialect == DialectSQLite {
		if err := runMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return &Client{
		db:       db,
		dialect:  dialect,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      log,
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close closes the underlying database.
func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) placeholder(i int) string {
	if c.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// Select returns all rows of a collection. Journal entries are filtered to
// the current session's user; without a session the result is empty.
func (c *Client) Select(ctx context.Context, collection string, order *remote.Order) ([]remote.Row, error) {
	jsonCols, ok := collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", remote.ErrUnknownCollection, collection)
	}

	query := "SELECT * FROM " + collection
	var args []any
	if collection == remote.CollectionJournal {
		sess := c.currentSession()
		if sess == nil {
			return nil, nil
		}
		query += " WHERE user_id = " + c.placeholder(1)
		args = append(args, sess.UserID)
	}
	if order != nil {
		col, err := safeIdent(order.Column)
		if err != nil {
			return nil, err
		}
		query += " ORDER BY " + col
		if order.Descending {
			query += " DESC"
		}
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", collection, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []remote.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(remote.Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i], jsonCols[col])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores row, deriving an id and, for journal entries, timestamps
// when the caller did not provide them, and returns the stored row.
func (c *Client) Insert(ctx context.Context, collection string, row remote.Row) (remote.Row, error) {
	jsonCols, ok := collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", remote.ErrUnknownCollection, collection)
	}

	stored := make(remote.Row, len(row)+3)
	for k, v := range row {
		stored[k] = v
	}
	id, _ := stored["id"].(string)
	if id == "" {
		id = uuid.NewString()
		stored["id"] = id
	}
	if collection == remote.CollectionJournal {
		now := time.Now().UTC().Format(time.RFC3339)
		if _, ok := stored["created_at"]; !ok {
			stored["created_at"] = now
		}
		if _, ok := stored["updated_at"]; !ok {
			stored["updated_at"] = now
		}
	}

	cols := sortedKeys(stored)
	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		name, err := safeIdent(col)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		marks = append(marks, c.placeholder(i+1))
		args = append(args, storableValue(stored[col], jsonCols[col]))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		collection, strings.Join(names, ", "), strings.Join(marks, ", "))
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return c.selectByID(ctx, collection, id)
}

// Update applies changes to the row with the given id.
func (c *Client) Update(ctx context.Context, collection string, changes remote.Row, matchID string) error {
	jsonCols, ok := collections[collection]
	if !ok {
		return fmt.Errorf("%w: %s", remote.ErrUnknownCollection, collection)
	}
	if len(changes) == 0 {
		return nil
	}

	cols := sortedKeys(changes)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		name, err := safeIdent(col)
		if err != nil {
			return err
		}
		sets = append(sets, name+" = "+c.placeholder(i+1))
		args = append(args, storableValue(changes[col], jsonCols[col]))
	}
	args = append(args, matchID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		collection, strings.Join(sets, ", "), c.placeholder(len(cols)+1))
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating %s: %w", collection, err)
	}
	return nil
}

// Delete removes the row with the given id. Deleting a missing row succeeds.
func (c *Client) Delete(ctx context.Context, collection string, matchID string) error {
	if _, ok := collections[collection]; !ok {
		return fmt.Errorf("%w: %s", remote.ErrUnknownCollection, collection)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", collection, c.placeholder(1))
	if _, err := c.db.ExecContext(ctx, query, matchID); err != nil {
		return fmt.Errorf("deleting from %s: %w", collection, err)
	}
	return nil
}

func (c *Client) selectByID(ctx context.Context, collection, id string) (remote.Row, error) {
	jsonCols := collections[collection]
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = %s", collection, c.placeholder(1))
	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, remote.ErrNotFound
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	row := make(remote.Row, len(cols))
	for i, col := range cols {
		row[col] = normalizeValue(values[i], jsonCols[col])
	}
	return row, nil
}

// normalizeValue maps driver values to the same shapes a JSON API would
// produce: byte slices become strings and JSON columns are decoded.
func normalizeValue(v any, isJSON bool) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if isJSON {
		if s, ok := v.(string); ok && s != "" {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				return decoded
			}
		}
	}
	return v
}

// storableValue prepares a row value for binding: structured values are
// JSON-encoded into TEXT.
func storableValue(v any, isJSON bool) any {
	switch v.(type) {
	case map[string]any, []any, []string:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(data)
	}
	if isJSON {
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	return v
}

func sortedKeys(row remote.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// safeIdent admits plain lowercase identifiers only; everything that goes
// into SQL text rather than a bind parameter passes through here.
func safeIdent(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty identifier")
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return "", fmt.Errorf("invalid identifier %q", s)
		}
	}
	return s, nil
}
