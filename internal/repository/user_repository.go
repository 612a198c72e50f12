package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ramunasb/hotel-reservation/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts the user together with an empty profile row and
// returns the new user ID. The profile starts blank; the user fills
// it in before the catalog opens up. Both inserts run in one
// transaction so a half-registered account can never exist.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO profiles (user_id) VALUES (?)", uint64(id)); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UserOverview is one row of the admin user listing: the account,
// its profile fields and the balance. BalanceCents is nil for
// accounts whose balance row has not been created yet.
type UserOverview struct {
	ID           uint64 `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname"`
	City         string `json:"city"`
	Country      string `json:"country"`
	BalanceCents *int64 `json:"balance_cents"`
}

// ListOverview returns every user joined with profile data and the
// balance when one exists. Used by the admin user listing.
func (r *UserRepo) ListOverview(ctx context.Context) ([]UserOverview, error) {
	const q = `SELECT u.id, u.email, u.role,
                      COALESCE(p.name,''), COALESCE(p.lastname,''),
                      COALESCE(p.city,''), COALESCE(p.country,''),
                      b.amount_cents
               FROM users u
               JOIN profiles p ON p.user_id = u.id
               LEFT JOIN balances b ON b.user_id = u.id
               ORDER BY u.id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UserOverview, 0)
	for rows.Next() {
		var u UserOverview
		var cents sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.Name, &u.Lastname, &u.City, &u.Country, &cents); err != nil {
			return nil, err
		}
		if cents.Valid {
			v := cents.Int64
			u.BalanceCents = &v
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
