package history

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unifiwatch/stockwatch/internal/checker"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresConfig controls the pgx pool used for check history rows.
type PostgresConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type execCloser interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresProvider writes check records into Postgres.
//
// Expected schema:
//
//	CREATE TABLE checks (
//	    run_id         UUID PRIMARY KEY,
//	    url            TEXT NOT NULL,
//	    product        TEXT NOT NULL,
//	    verdict        TEXT NOT NULL,
//	    token          TEXT NOT NULL,
//	    screenshot_uri TEXT,
//	    notified       BOOLEAN NOT NULL,
//	    error_text     TEXT,
//	    checked_at     TIMESTAMPTZ NOT NULL,
//	    duration_ms    BIGINT NOT NULL
//	);
type PostgresProvider struct {
	pool  execCloser
	table string
}

// NewPostgresProvider creates a Postgres-backed history store from the
// provided config.
func NewPostgresProvider(ctx context.Context, cfg PostgresConfig) (*PostgresProvider, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("history.postgres.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "checks"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &PostgresProvider{pool: pool, table: table}, nil
}

// NewPostgresProviderWithPool constructs a provider from an existing
// pool (primarily for testing).
func NewPostgresProviderWithPool(pool execCloser, table string) (*PostgresProvider, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "checks"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresProvider{pool: pool, table: table}, nil
}

// Close releases the underlying pool resources.
func (p *PostgresProvider) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}

// RecordCheck inserts one check row.
func (p *PostgresProvider) RecordCheck(ctx context.Context, rec checker.CheckRecord) error {
	if p == nil || p.pool == nil {
		return fmt.Errorf("history store is not configured")
	}
	if rec.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
    run_id, url, product, verdict, token,
    screenshot_uri, notified, error_text, checked_at, duration_ms
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, p.table)

	if _, err := p.pool.Exec(ctx, query,
		rec.RunID,
		rec.URL,
		rec.Product,
		string(rec.Verdict),
		rec.Token,
		rec.ScreenshotURI,
		rec.Notified,
		rec.ErrorText,
		rec.CheckedAt,
		rec.DurationMs,
	); err != nil {
		return fmt.Errorf("insert check record: %w", err)
	}
	return nil
}
