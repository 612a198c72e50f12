package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ramunasb/hotel-reservation/internal/model"
)

// BalanceRepo manages the per-user prepaid balance. A balance row
// is created lazily: GetOrCreate is the single entry point that
// callers use instead of scattering lookup-or-insert logic around.
type BalanceRepo struct {
	db *sql.DB
}

// NewBalanceRepo returns a BalanceRepo bound to the given database.
func NewBalanceRepo(db *sql.DB) *BalanceRepo { return &BalanceRepo{db: db} }

const balanceSelect = `SELECT id, user_id, amount_cents, updated_at FROM balances WHERE user_id = ?`

// GetOrCreate returns the user's balance, inserting a zero-amount
// row when none exists yet. The operation is idempotent: a
// concurrent insert losing the unique-key race falls back to
// re-reading the winner's row.
func (r *BalanceRepo) GetOrCreate(ctx context.Context, userID uint64) (*model.Balance, error) {
	b, err := r.get(ctx, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO balances (user_id, amount_cents) VALUES (?, 0)", userID)
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil, err
	}
	return r.get(ctx, userID)
}

func (r *BalanceRepo) get(ctx context.Context, userID uint64) (*model.Balance, error) {
	var b model.Balance
	err := r.db.QueryRowContext(ctx, balanceSelect, userID).
		Scan(&b.ID, &b.UserID, &b.AmountCents, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SetAmount overwrites (not increments) the user's balance with the
// given amount. The row is created first when absent so an admin
// can fund an account that never touched its balance.
func (r *BalanceRepo) SetAmount(ctx context.Context, userID uint64, amountCents int64) error {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE balances SET amount_cents = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?",
		amountCents, userID)
	return err
}

// DebitTx deducts amountCents inside the caller's transaction. The
// UPDATE is guarded by `amount_cents >= ?` so an overdraw matches
// zero rows and nothing is written; in that case
// ErrInsufficientBalance is returned and the caller rolls back.
func (r *BalanceRepo) DebitTx(ctx context.Context, tx *sql.Tx, userID uint64, amountCents int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE balances SET amount_cents = amount_cents - ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ? AND amount_cents >= ?",
		amountCents, userID, amountCents)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientBalance
	}
	return nil
}
