// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/storefront/internal/config"
)

const (
	ledgerConnectAttempts = 3
	ledgerRetryBase       = 500 * time.Millisecond
	pgUniqueViolation     = "23505"
)

// Database is the postgres pool backing the payment ledger.
type Database struct {
	DB *sqlx.DB
}

// NewDatabase retries the first ping a few times, since postgres often comes
// up after the API in compose and k8s deployments.
func NewDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (*Database, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(jittered(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	d := &Database{DB: db}

	for attempt := 1; ; attempt++ {
		err = d.Ping(ctx)
		if err == nil {
			return d, nil
		}
		if attempt == ledgerConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(jittered(ledgerRetryBase * time.Duration(attempt))):
			continue
		}
		break
	}

	_ = db.Close() //nolint:errcheck // cleanup on connection failure
	return nil, fmt.Errorf("connect to ledger database: %w", err)
}

func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := d.DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ledger ping: %w", err)
	}
	return nil
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

// InTx commits when fn returns nil and rolls back otherwise, including on
// panic.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() //nolint:errcheck // re-panicking
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// jittered adds up to ~14% so pooled connections do not all expire together.
func jittered(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: pool timing jitter
	return base + time.Duration(rand.Int64N(int64(base/7)+1))
}
