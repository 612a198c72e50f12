package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/ramunasb/hotel-reservation/internal/model"
)

// ErrOrderNotFound is returned when an order lookup fails.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo provides persistence for orders and their owned
// admin_details rows. An order and its details are always written
// together: CreateTx inserts the details first and then the order
// referencing them, so a detached order can never exist.  All
// timestamp fields are assumed to be stored in UTC.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle for callers that open the
// transaction wrapping UpdateWithDetailsTx.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// OrderRecord mirrors the schema of the orders table. It is used
// internally by the repository when constructing rows within the
// reservation transaction. Dates are YYYY-MM-DD strings.
type OrderRecord struct {
    ID             uint64
    ClientID       uint64
    HotelID        uint64
    CheckIn        string
    CheckOut       string
    TotalCents     int64
    Status         string
    AdminDetailsID uint64
}

// CreateTx inserts a new order within the scope of an existing
// transaction. The dependent admin_details row is inserted first
// with its placeholder values (room 0, floor 0, default status
// note), then the order referencing it. Generated IDs are
// populated on the record. The caller must commit or rollback.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *OrderRecord) error {
    const qDetails = `INSERT INTO admin_details (client_id, room_number, floor, status_note) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, qDetails, rec.ClientID, 0, 0, model.DefaultStatusNote)
    if err != nil {
        return err
    }
    detailsID, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rec.AdminDetailsID = uint64(detailsID)

    const qOrder = `INSERT INTO orders (client_id, hotel_id, check_in, check_out, total_cents, status, admin_details_id) VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err = tx.ExecContext(ctx, qOrder,
        rec.ClientID, rec.HotelID, rec.CheckIn, rec.CheckOut, rec.TotalCents, rec.Status, rec.AdminDetailsID)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rec.ID = uint64(id)
    return nil
}

// OrderDetail is an order joined with its hotel name and admin
// details, as shown to the customer who placed it. Hotel fields
// are nil when the hotel has been deleted since booking.
type OrderDetail struct {
    ID         uint64    `json:"id"`
    CheckIn    string    `json:"check_in"`
    CheckOut   string    `json:"check_out"`
    TotalCents int64     `json:"total_cents"`
    Status     string    `json:"status"`
    CreatedAt  time.Time `json:"created_at"`
    HotelID    *uint64   `json:"hotel_id,omitempty"`
    HotelName  *string   `json:"hotel_name,omitempty"`
    RoomNumber int32     `json:"room_number"`
    Floor      int32     `json:"floor"`
    StatusNote string    `json:"status_note"`
}

// AdminOrderDetail extends OrderDetail with the booking client for
// the admin listing. Client fields are nil when the profile has
// been deleted since booking.
type AdminOrderDetail struct {
    OrderDetail
    ClientID       *uint64 `json:"client_id,omitempty"`
    ClientName     *string `json:"client_name,omitempty"`
    ClientLastname *string `json:"client_lastname,omitempty"`
}

const orderDetailSelect = `SELECT o.id,
                      DATE_FORMAT(o.check_in, '%Y-%m-%d'), DATE_FORMAT(o.check_out, '%Y-%m-%d'),
                      o.total_cents, o.status, o.created_at,
                      o.hotel_id, h.name,
                      d.room_number, d.floor, d.status_note
               FROM orders o
               LEFT JOIN hotels h ON h.id = o.hotel_id
               JOIN admin_details d ON d.id = o.admin_details_id`

func scanOrderDetail(row interface{ Scan(...any) error }, det *OrderDetail) error {
    var hotelID sql.NullInt64
    var hotelName sql.NullString
    if err := row.Scan(&det.ID, &det.CheckIn, &det.CheckOut, &det.TotalCents, &det.Status, &det.CreatedAt,
        &hotelID, &hotelName, &det.RoomNumber, &det.Floor, &det.StatusNote); err != nil {
        return err
    }
    if hotelID.Valid {
        id := uint64(hotelID.Int64)
        det.HotelID = &id
    }
    if hotelName.Valid {
        n := hotelName.String
        det.HotelName = &n
    }
    return nil
}

// GetByIDForUser returns a single order for the given user. The
// join through profiles enforces ownership; when no order with the
// specified ID exists for the user, sql.ErrNoRows is returned.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderDetail, error) {
    const q = orderDetailSelect + `
               JOIN profiles p ON p.id = o.client_id
               WHERE o.id = ? AND p.user_id = ?`
    var det OrderDetail
    if err := scanOrderDetail(r.db.QueryRowContext(ctx, q, orderID, userID), &det); err != nil {
        return nil, err
    }
    return &det, nil
}

// ListByUser returns all orders placed by the given user, newest
// first. When no orders exist, an empty slice is returned.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderDetail, error) {
    const q = orderDetailSelect + `
               JOIN profiles p ON p.id = o.client_id
               WHERE p.user_id = ?
               ORDER BY o.created_at DESC, o.id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]OrderDetail, 0)
    for rows.Next() {
        var det OrderDetail
        if err := scanOrderDetail(rows, &det); err != nil {
            return nil, err
        }
        out = append(out, det)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListAll returns every order with client and hotel information,
// newest first. Used by the admin order listing.
func (r *OrderRepo) ListAll(ctx context.Context) ([]AdminOrderDetail, error) {
    const q = `SELECT o.id,
                      DATE_FORMAT(o.check_in, '%Y-%m-%d'), DATE_FORMAT(o.check_out, '%Y-%m-%d'),
                      o.total_cents, o.status, o.created_at,
                      o.hotel_id, h.name,
                      d.room_number, d.floor, d.status_note,
                      o.client_id, p.name, p.lastname
               FROM orders o
               LEFT JOIN hotels h ON h.id = o.hotel_id
               JOIN admin_details d ON d.id = o.admin_details_id
               LEFT JOIN profiles p ON p.id = o.client_id
               ORDER BY o.created_at DESC, o.id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminOrderDetail, 0)
    for rows.Next() {
        var det AdminOrderDetail
        var hotelID, clientID sql.NullInt64
        var hotelName, clientName, clientLastname sql.NullString
        if err := rows.Scan(&det.ID, &det.CheckIn, &det.CheckOut, &det.TotalCents, &det.Status, &det.CreatedAt,
            &hotelID, &hotelName, &det.RoomNumber, &det.Floor, &det.StatusNote,
            &clientID, &clientName, &clientLastname); err != nil {
            return nil, err
        }
        if hotelID.Valid {
            id := uint64(hotelID.Int64)
            det.HotelID = &id
        }
        if hotelName.Valid {
            n := hotelName.String
            det.HotelName = &n
        }
        if clientID.Valid {
            id := uint64(clientID.Int64)
            det.ClientID = &id
        }
        if clientName.Valid {
            n := clientName.String
            det.ClientName = &n
        }
        if clientLastname.Valid {
            n := clientLastname.String
            det.ClientLastname = &n
        }
        out = append(out, det)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateWithDetailsTx applies the combined admin edit: the order
// status and the admin-details fields, inside one transaction so
// the two sub-forms save both-or-neither. Returns ErrOrderNotFound
// when the order does not exist.
func (r *OrderRepo) UpdateWithDetailsTx(ctx context.Context, tx *sql.Tx, orderID uint64, status string, d model.AdminDetails) error {
    const qLock = `SELECT admin_details_id FROM orders WHERE id = ? FOR UPDATE`
    var detailsID uint64
    if err := tx.QueryRowContext(ctx, qLock, orderID).Scan(&detailsID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrOrderNotFound
        }
        return err
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE orders SET status = ? WHERE id = ?", status, orderID); err != nil {
        return err
    }
    _, err := tx.ExecContext(ctx,
        "UPDATE admin_details SET room_number = ?, floor = ?, status_note = ? WHERE id = ?",
        d.RoomNumber, d.Floor, d.StatusNote, detailsID)
    return err
}
