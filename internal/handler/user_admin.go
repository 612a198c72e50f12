package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/repository"
)

// AdminUserHandler serves the back-office user listing and balance
// funding. Routes using it are registered behind RequireRole("ADMIN").
type AdminUserHandler struct {
    Users    *repository.UserRepo
    Balances *repository.BalanceRepo
}

func NewAdminUserHandler(u *repository.UserRepo, b *repository.BalanceRepo) *AdminUserHandler {
    return &AdminUserHandler{Users: u, Balances: b}
}

// List returns every account with its profile fields and balance.
// balance_cents is null for accounts that never touched their balance.
func (h *AdminUserHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.ListOverview(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"users": users})
}

type setBalanceReq struct {
    // Pointer so "field missing" and "amount 0" stay distinguishable.
    AmountCents *int64 `json:"amount_cents"`
}

// SetBalance overwrites (not increments) the target user's balance.
// Non-numeric input fails the bind; missing or negative amounts are
// rejected explicitly. Nothing is written on rejection.
func (h *AdminUserHandler) SetBalance(c echo.Context) error {
    userID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    var req setBalanceReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be a number"})
    }
    if req.AmountCents == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents required"})
    }
    if *req.AmountCents < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must not be negative"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Users.GetByID(ctx, userID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    if err := h.Balances.SetAmount(ctx, userID, *req.AmountCents); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user_id":      userID,
        "amount_cents": *req.AmountCents,
    })
}
