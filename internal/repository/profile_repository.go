package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/ramunasb/hotel-reservation/internal/model"
)

// ErrProfileNotFound is returned when a profile lookup fails.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepo provides methods to read and update profiles. The
// profile row itself is created by UserRepo.Create as part of
// registration, so there is no standalone create here.
type ProfileRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewProfileRepo constructs a ProfileRepo with the given DB handle.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetByUserID retrieves the profile belonging to a user. Nullable
// columns come back as empty strings so model.Profile.IsComplete
// can treat "never filled in" and "filled in blank" the same way.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	const q = `SELECT id, user_id,
                      COALESCE(name,''), COALESCE(lastname,''),
                      COALESCE(DATE_FORMAT(birth_date,'%Y-%m-%d'),''),
                      COALESCE(address,''), COALESCE(city,''), COALESCE(country,''),
                      updated_at
               FROM profiles WHERE user_id = ?`
	var p model.Profile
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Lastname, &p.BirthDate,
		&p.Address, &p.City, &p.Country, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites the six user-editable profile fields. It
// returns ErrProfileNotFound when the user has no profile row.
func (r *ProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	const q = `UPDATE profiles
               SET name = ?, lastname = ?, birth_date = ?, address = ?, city = ?, country = ?,
                   updated_at = CURRENT_TIMESTAMP
               WHERE user_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Lastname, p.BirthDate, p.Address, p.City, p.Country, p.UserID)
	if err != nil {
		return err
	}
	// MySQL reports matched rows here only with CLIENT_FOUND_ROWS;
	// a no-op update on an existing row is indistinguishable from a
	// miss, so verify existence before treating 0 as not found.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByUserID(ctx, p.UserID); err != nil {
			return err
		}
	}
	return nil
}
