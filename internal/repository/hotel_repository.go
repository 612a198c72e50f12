package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ramunasb/hotel-reservation/internal/model"
)

// ErrHotelNotFound is returned when a hotel lookup fails.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo provides catalog queries and the availability updates
// used by the reservation workflow.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the given DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// DB exposes the underlying handle so handlers can open the
// transactions that span hotels, balances and orders.
func (r *HotelRepo) DB() *sql.DB { return r.db }

const hotelColumns = `id, name, type, stars, description, address, price_cents, max_occupancy, availability, created_at, updated_at`

func scanHotel(row interface{ Scan(...any) error }) (*model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.Type, &h.Stars, &h.Description, &h.Address,
		&h.PriceCents, &h.MaxOccupancy, &h.Availability, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a new hotel and reads the row back so timestamps
// and defaults are populated on the returned struct.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = `INSERT INTO hotels (name, type, stars, description, address, price_cents, max_occupancy, availability)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		h.Name, h.Type, h.Stars, h.Description, h.Address, h.PriceCents, h.MaxOccupancy, h.Availability)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	got, err := scanHotel(r.db.QueryRowContext(ctx, qSelect, h.ID))
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID retrieves a hotel by its ID. It returns ErrHotelNotFound
// when no row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	h, err := scanHotel(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return h, nil
}

// List returns one page of the catalog ordered by id, plus the
// total row count for pagination.
func (r *HotelRepo) List(ctx context.Context, page, pageSize int) ([]*model.Hotel, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&total); err != nil {
		return nil, 0, err
	}
	const q = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]*model.Hotel, 0, pageSize)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// HotelFilter carries the optional exact-match catalog filters.
// Zero values mean "not filtered on"; set filters intersect.
type HotelFilter struct {
	Name         string // exact name, case-insensitive
	Stars        uint8  // exact star rating
	MaxOccupancy uint8  // exact occupancy limit
}

// Filter returns all hotels matching every set filter, ordered by id.
func (r *HotelRepo) Filter(ctx context.Context, f HotelFilter) ([]*model.Hotel, error) {
	where := []string{}
	args := []any{}

	if f.Name != "" {
		where = append(where, "LOWER(name) = ?")
		args = append(args, strings.ToLower(f.Name))
	}
	if f.Stars != 0 {
		where = append(where, "stars = ?")
		args = append(args, f.Stars)
	}
	if f.MaxOccupancy != 0 {
		where = append(where, "max_occupancy = ?")
		args = append(args, f.MaxOccupancy)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	q := `SELECT ` + hotelColumns + ` FROM hotels WHERE ` + cond + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetForUpdateTx re-reads price and availability under a row lock
// inside the reservation transaction. Concurrent reservations for
// the same hotel serialize here instead of racing the
// read-check-then-write sequence.
func (r *HotelRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (priceCents int64, availability int64, err error) {
	const q = `SELECT price_cents, availability FROM hotels WHERE id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, id).Scan(&priceCents, &availability)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrHotelNotFound
	}
	return
}

// DecrementAvailabilityTx takes one unit off the hotel's remaining
// availability inside the caller's transaction.
func (r *HotelRepo) DecrementAvailabilityTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE hotels SET availability = availability - 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// DeleteByID removes a hotel unless any order still references it,
// in which case ErrConflict is returned and nothing is deleted.
// Refusing instead of cascading keeps order history intact.
func (r *HotelRepo) DeleteByID(ctx context.Context, id uint64) error {
	var referenced bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE hotel_id = ?)", id).Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHotelNotFound
	}
	return nil
}
