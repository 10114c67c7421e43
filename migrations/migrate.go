package migrations

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"eventgo-ticketing/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

// Serializes concurrent appliers (several replicas starting at once).
const lockKey int64 = 0x65766e74676f // "evntgo"

// FS exposes the SQL files for the atlas wrapper and tests.
func FS() fs.FS {
	return files
}

// Apply runs every embedded migration not yet recorded in schema_migrations, in file name order.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	names, err := fileNames()
	if err != nil {
		return err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return errs.Wrap(err, "acquire migration connection")
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return errs.Wrap(err, "acquire migration lock")
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	if _, err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name       TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return errs.Wrap(err, "ensure schema_migrations")
	}

	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", name)
		}
		applied, err := applyOne(ctx, conn.Conn(), name, strings.TrimSpace(string(body)))
		if err != nil {
			return err
		}
		if applied {
			logger.Info("migration applied", "file", name)
		}
	}
	return nil
}

func applyOne(ctx context.Context, conn *pgx.Conn, name, body string) (bool, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return false, errs.Wrapf(err, "begin migration %s", name)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var done bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&done); err != nil {
		return false, errs.Wrapf(err, "check migration %s", name)
	}
	if done || body == "" {
		return false, nil
	}

	if _, err := tx.Exec(ctx, body); err != nil {
		return false, errs.Wrapf(err, "exec migration %s", name)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return false, errs.Wrapf(err, "record migration %s", name)
	}
	return true, errs.Wrapf(tx.Commit(ctx), "commit migration %s", name)
}

func fileNames() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, errs.Wrap(err, "read migrations")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
