package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// ─── LedgerStore Implementation ─────────────────────────────────────────────
// Balance and history are written in one SQL transaction so a crash
// can never leave a balance its history does not explain. Timestamps
// are stored as unix nanoseconds; insertion order is rowid order.

// GetAccount returns the account with its full history, or nil when
// the id is unknown.
func (d *DB) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var (
		balance   int64
		createdAt int64
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT balance, created_at FROM accounts WHERE id = ?`, id,
	).Scan(&balance, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}

	history, err := d.Transactions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:        id,
		Balance:   balance,
		History:   history,
		CreatedAt: time.Unix(0, createdAt),
	}, nil
}

// CreateAccount inserts a new account row. An existing id is left
// untouched: re-seeding would rewrite history.
func (d *DB) CreateAccount(ctx context.Context, acct domain.Account) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO accounts (id, balance, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		acct.ID, acct.Balance, acct.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// UpdateBalance sets the balance and appends the transaction atomically.
func (d *DB) UpdateBalance(ctx context.Context, id string, balance int64, tx domain.Transaction) error {
	sqlTx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer sqlTx.Rollback()

	res, err := sqlTx.ExecContext(ctx,
		`UPDATE accounts SET balance = ? WHERE id = ?`, balance, id)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update balance: account %s does not exist", id)
	}

	_, err = sqlTx.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, kind, amount, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		tx.ID, id, string(tx.Kind), tx.Amount, tx.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	return sqlTx.Commit()
}

// Transactions returns the account's history in insertion order.
func (d *DB) Transactions(ctx context.Context, id string) ([]domain.Transaction, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, kind, amount, timestamp FROM transactions
		 WHERE account_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			tx   domain.Transaction
			kind string
			ts   int64
		)
		if err := rows.Scan(&tx.ID, &kind, &tx.Amount, &ts); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = domain.TransactionKind(kind)
		tx.Timestamp = time.Unix(0, ts)
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Compile-time check: DB implements domain.LedgerStore.
var _ domain.LedgerStore = (*DB)(nil)
