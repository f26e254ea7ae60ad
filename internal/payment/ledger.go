// AngelaMos | 2026
// ledger.go

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

type Outcome string

const (
	OutcomeCaptured            Outcome = "captured"
	OutcomeDeclined            Outcome = "declined"
	OutcomeGatewayError        Outcome = "gateway_error"
	OutcomeCapturedOrderFailed Outcome = "captured_order_failed"
)

// Entry is one sale attempt. OrderID is empty unless an order was persisted.
type Entry struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	BuyerID       string    `db:"buyer_id"       json:"buyerId"`
	AmountCents   int64     `db:"amount_cents"   json:"amountCents"`
	Outcome       Outcome   `db:"outcome"        json:"outcome"`
	TransactionID string    `db:"transaction_id" json:"transactionId,omitempty"`
	Error         string    `db:"error"          json:"error,omitempty"`
	OrderID       string    `db:"order_id"       json:"orderId,omitempty"`
	CreatedAt     time.Time `db:"created_at"     json:"createdAt"`
}

type Ledger interface {
	Record(ctx context.Context, e *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS payment_ledger (
	id             UUID PRIMARY KEY,
	buyer_id       TEXT NOT NULL,
	amount_cents   BIGINT NOT NULL,
	outcome        TEXT NOT NULL,
	transaction_id TEXT NOT NULL DEFAULT '',
	error          TEXT NOT NULL DEFAULT '',
	order_id       TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const ledgerIndex = `
CREATE INDEX IF NOT EXISTS payment_ledger_created_at
	ON payment_ledger (created_at DESC)`

type PostgresLedger struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresLedger(db *sqlx.DB) *PostgresLedger {
	return &PostgresLedger{db: db, now: time.Now}
}

func (l *PostgresLedger) EnsureSchema(ctx context.Context) error {
	return core.InTx(ctx, l.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, ledgerSchema); err != nil {
			return fmt.Errorf("create payment_ledger: %w", err)
		}
		if _, err := tx.ExecContext(ctx, ledgerIndex); err != nil {
			return fmt.Errorf("create payment_ledger index: %w", err)
		}
		return nil
	})
}

func (l *PostgresLedger) Record(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.now().UTC()
	}

	query := `
		INSERT INTO payment_ledger (
			id, buyer_id, amount_cents, outcome,
			transaction_id, error, order_id, created_at
		) VALUES (
			:id, :buyer_id, :amount_cents, :outcome,
			:transaction_id, :error, :order_id, :created_at
		)`

	if _, err := l.db.NamedExecContext(ctx, query, e); err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("record payment: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

func (l *PostgresLedger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, buyer_id, amount_cents, outcome,
			transaction_id, error, order_id, created_at
		FROM payment_ledger
		ORDER BY created_at DESC
		LIMIT $1`

	entries := []Entry{}
	if err := l.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return entries, nil
}

// NopLedger is used when no ledger database is configured.
type NopLedger struct{}

func (NopLedger) Record(context.Context, *Entry) error { return nil }

func (NopLedger) Recent(context.Context, int) ([]Entry, error) {
	return []Entry{}, nil
}
