package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/model"
    "github.com/ramunasb/hotel-reservation/internal/queue"
    "github.com/ramunasb/hotel-reservation/internal/repository"
    queue_publisher "github.com/ramunasb/hotel-reservation/internal/service"
)

// Stay validation errors, mapped to 4xx responses by the handler.
var (
    errBadDateFormat = errors.New("dates must be YYYY-MM-DD")
    errStaleDates    = errors.New("stale dates")
    errInvalidStay   = errors.New("invalid stay")
)

// stayNights validates a check-in/check-out pair against the given
// "today" and returns the stay length in whole nights. Both dates
// must be today or later, and check-out must be strictly after
// check-in.
func stayNights(checkIn, checkOut string, today time.Time) (int64, error) {
    ci, err := time.Parse("2006-01-02", checkIn)
    if err != nil {
        return 0, errBadDateFormat
    }
    co, err := time.Parse("2006-01-02", checkOut)
    if err != nil {
        return 0, errBadDateFormat
    }
    day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
    if ci.Before(day) || co.Before(day) {
        return 0, errStaleDates
    }
    nights := int64(co.Sub(ci).Hours() / 24)
    if nights <= 0 {
        return 0, errInvalidStay
    }
    return nights, nil
}

// ReservationHandler owns the reservation workflow and the customer
// order views.
type ReservationHandler struct {
    Hotels   *repository.HotelRepo
    Balances *repository.BalanceRepo
    Orders   *repository.OrderRepo
    Profiles *repository.ProfileRepo
}

func NewReservationHandler(h *repository.HotelRepo, b *repository.BalanceRepo, o *repository.OrderRepo, p *repository.ProfileRepo) *ReservationHandler {
    return &ReservationHandler{Hotels: h, Balances: b, Orders: o, Profiles: p}
}

type reserveReq struct {
    CheckIn  string `json:"check_in"`
    CheckOut string `json:"check_out"`
}

// Create places an order for the hotel in the path. The money and
// availability checks run inside one transaction with the hotel row
// locked, so two concurrent requests for the last unit serialize and
// the loser is rejected cleanly. Everything before BeginTx is
// read-only; every rejection leaves no side effects.
func (h *ReservationHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    hotelID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
    }

    var req reserveReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    profile, err := h.Profiles.GetByUserID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !profile.IsComplete() {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "complete your profile to place orders"})
    }

    hotel, err := h.Hotels.GetByID(ctx, hotelID)
    if err != nil {
        if err == repository.ErrHotelNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    nights, err := stayNights(req.CheckIn, req.CheckOut, time.Now().UTC())
    if err != nil {
        switch err {
        case errBadDateFormat:
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        default: // stale dates, invalid stay
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
        }
    }

    // Make sure the balance row exists before the guarded debit; a
    // user who never funded the account still gets the explicit
    // insufficient-balance answer instead of a silent zero-row update.
    bal, err := h.Balances.GetOrCreate(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    tx, err := h.Hotels.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Re-read price and availability under the row lock; the catalog
    // values the client saw may be stale by now.
    priceCents, availability, err := h.Hotels.GetForUpdateTx(ctx, tx, hotelID)
    if err != nil {
        if err == repository.ErrHotelNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if availability <= 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no availability"})
    }

    total := nights * priceCents

    if err := h.Balances.DebitTx(ctx, tx, uid, total); err != nil {
        if err == repository.ErrInsufficientBalance {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "insufficient balance"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "debit failed"})
    }
    if err := h.Hotels.DecrementAvailabilityTx(ctx, tx, hotelID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update availability failed"})
    }

    rec := repository.OrderRecord{
        ClientID:   profile.ID,
        HotelID:    hotelID,
        CheckIn:    req.CheckIn,
        CheckOut:   req.CheckOut,
        TotalCents: total,
        Status:     model.OrderStatusOrdered,
    }
    if err := h.Orders.CreateTx(ctx, tx, &rec); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
    }

    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
    }
    committed = true

    // Best effort: the order is committed, a broker outage only costs
    // the event.
    go func() {
        pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer pcancel()
        _ = queue_publisher.PublishOrderPlaced(pctx, queue.OrderPlacedEvent{
            OrderID:          rec.ID,
            UserID:           uid,
            HotelID:          hotelID,
            HotelName:        hotel.Name,
            CheckIn:          req.CheckIn,
            CheckOut:         req.CheckOut,
            Nights:           nights,
            TotalAmountCents: total,
            PlacedAt:         time.Now().UTC().Format(time.RFC3339),
        })
    }()

    return c.JSON(http.StatusCreated, echo.Map{
        "order_id":      rec.ID,
        "total_cents":   total,
        "balance_cents": bal.AmountCents - total,
        "status":        rec.Status,
    })
}

// MyOrders lists the caller's orders, newest first.
func (h *ReservationHandler) MyOrders(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    orders, err := h.Orders.ListByUser(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder returns one of the caller's orders; someone else's order
// looks exactly like a missing one.
func (h *ReservationHandler) GetOrder(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    orderID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    det, err := h.Orders.GetByIDForUser(ctx, orderID, uid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, det)
}
