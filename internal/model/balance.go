package model

import "time"

// Balance is the prepaid credit a user spends on reservations.
// Exactly one row exists per user; the row is created lazily with
// a zero amount the first time it is needed. Amounts are integer
// cents, non-negative by convention (the debit path checks before
// writing, admin writes reject negative input).
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user's ID (unique).
//  AmountCents – current credit in cents.
//  UpdatedAt   – timestamp of last update.
type Balance struct {
    ID          uint64    // balances.id
    UserID      uint64    // balances.user_id
    AmountCents int64     // balances.amount_cents
    UpdatedAt   time.Time // balances.updated_at
}
