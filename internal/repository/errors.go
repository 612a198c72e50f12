// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrInsufficientBalance signals that a debit would overdraw
// a balance, while ErrConflict signals that an operation cannot
// proceed due to existing dependent records (e.g. deleting a hotel
// that orders still reference).
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a hotel that orders still reference. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInsufficientBalance is returned by the guarded debit when the
// balance is smaller than the amount to deduct. The debit performs
// no write in that case, so rejection leaves the balance untouched.
var ErrInsufficientBalance = errors.New("insufficient balance")
