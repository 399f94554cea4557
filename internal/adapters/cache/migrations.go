package cache

import (
	"context"
	"strconv"

	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

var migrations = []struct {
	version int
	sql     string
}{
	{
		version: 1,
		sql: `
			CREATE TABLE cache_context (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				fingerprint TEXT NOT NULL
			);

			CREATE TABLE sources (
				path TEXT PRIMARY KEY,
				checksum TEXT NOT NULL,
				recorded_at INTEGER NOT NULL
			);
		`,
	},
}

// migrate applies every pending migration, each in its own transaction.
func (c *SQLiteCache) migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		)
	`); err != nil {
		return zerr.Wrap(err, domain.ErrCacheOpenFailed.Error())
	}

	for _, m := range migrations {
		if err := c.apply(ctx, m.version, m.sql); err != nil {
			return zerr.With(err, "migration", m.version)
		}
	}
	return nil
}

func (c *SQLiteCache) apply(ctx context.Context, version int, stmt string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheOpenFailed.Error())
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	var applied int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version,
	).Scan(&applied); err != nil {
		return zerr.Wrap(err, domain.ErrCacheOpenFailed.Error())
	}
	if applied > 0 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return zerr.Wrap(err, domain.ErrCacheOpenFailed.Error())
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
		return zerr.Wrap(err, domain.ErrCacheOpenFailed.Error())
	}
	return zerr.Wrap(tx.Commit(), domain.ErrCacheOpenFailed.Error())
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
