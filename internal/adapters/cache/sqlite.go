package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/remold/internal/adapters/fs"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // SQLite driver
)

const busyTimeout = 30 * time.Second

var _ ports.ChecksumCache = (*SQLiteCache)(nil)

// SQLiteCache stores records in a SQLite database shared by every worker.
// Concurrent writers are serialized by SQLite's file locking.
type SQLiteCache struct {
	db     *sql.DB
	hasher *fs.Hasher
}

// OpenSQLite opens the database at path, runs migrations and resets the
// records when the stored context differs from fingerprint.
func OpenSQLite(ctx context.Context, path, fingerprint string, hasher *fs.Hasher) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(" + itoa(busyTimeout.Milliseconds()) + ")" +
		"&_pragma=journal_mode(WAL)" +
		"&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	c := &SQLiteCache{db: db, hasher: hasher}
	if err := c.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.With(err, "path", path)
	}
	if _, err := c.syncContext(ctx, fingerprint); err != nil {
		_ = db.Close()
		return nil, zerr.With(err, "path", path)
	}

	return c, nil
}

// syncContext stores fingerprint and deletes every record if it changed.
// It reports whether the records were reset.
func (c *SQLiteCache) syncContext(ctx context.Context, fingerprint string) (bool, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrCacheOpenFailed.Error())
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	var stored string
	err = tx.QueryRowContext(ctx, `SELECT fingerprint FROM cache_context WHERE id = 1`).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	case stored == fingerprint:
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sources`); err != nil {
		return false, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_context (id, fingerprint) VALUES (1, ?)`, fingerprint,
	); err != nil {
		return false, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := tx.Commit(); err != nil {
		return false, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return true, nil
}

// Contains reports whether path is recorded with its current checksum.
func (c *SQLiteCache) Contains(path string) (bool, error) {
	sum, err := c.hasher.ChecksumSource(path)
	if err != nil {
		return false, err
	}
	if sum == "" {
		return false, nil
	}

	var one int
	err = c.db.QueryRow(
		`SELECT 1 FROM sources WHERE path = ? AND checksum = ?`, recordKey(path), sum,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "source", path)
	}
	return true, nil
}

// CacheSource records path with its current checksum.
func (c *SQLiteCache) CacheSource(path string) error {
	sum, err := c.hasher.ChecksumSource(path)
	if err != nil {
		return err
	}
	if sum == "" {
		return nil
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO sources (path, checksum, recorded_at) VALUES (?, ?, ?)`,
		recordKey(path), sum, time.Now().Unix(),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "source", path)
	}
	return nil
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	if err := c.db.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}
