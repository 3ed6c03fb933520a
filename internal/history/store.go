// Package history provides SQLite-backed persistence of completed
// resolutions, so the management API can serve recent lookups across daemon
// restarts.
//
// The schema is managed with golang-migrate from embedded migration files.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Entry is one completed resolution attempt.
type Entry struct {
	ID         int64     `json:"id"`
	Domain     string    `json:"domain"`
	Addresses  []string  `json:"addresses"`
	Hops       int       `json:"hops"`
	Outcome    string    `json:"outcome"` // "ok" or a failure reason
	DurationMs int64     `json:"duration_ms"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// OutcomeOK marks a successful resolution.
const OutcomeOK = "ok"

// Store wraps a SQLite database holding resolution history.
type Store struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Open opens or creates the history database at path and brings the schema
// up to date.
func Open(path string) (*Store, error) {
	// WAL mode for concurrent readers while the daemon writes.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{conn: conn}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record inserts one resolution attempt and returns its row ID.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ResolvedAt.IsZero() {
		e.ResolvedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO resolutions (domain, addresses, hops, outcome, duration_ms, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Domain, strings.Join(e.Addresses, ","), e.Hops, e.Outcome, e.DurationMs, e.ResolvedAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("record resolution for %s: %w", e.Domain, err)
	}
	return res.LastInsertId()
}

// Recent returns the most recent entries, newest first. A non-positive
// limit defaults to 50.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, domain, addresses, hops, outcome, duration_ms, resolved_at
		FROM resolutions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e     Entry
			addrs string
			at    string
		)
		if err := rows.Scan(&e.ID, &e.Domain, &addrs, &e.Hops, &e.Outcome, &e.DurationMs, &at); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if addrs != "" {
			e.Addresses = strings.Split(addrs, ",")
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.ResolvedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of stored entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM resolutions").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Prune deletes everything except the newest keep entries.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	res, err := s.conn.ExecContext(ctx, `
		DELETE FROM resolutions
		WHERE id NOT IN (SELECT id FROM resolutions ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}
