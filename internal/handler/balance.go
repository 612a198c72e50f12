package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/repository"
)

// BalanceHandler lets a customer read their prepaid balance. Top-ups
// go through an administrator; there is no self-service deposit.
type BalanceHandler struct {
    Balances *repository.BalanceRepo
}

func NewBalanceHandler(b *repository.BalanceRepo) *BalanceHandler {
    return &BalanceHandler{Balances: b}
}

// Get returns the current balance, creating the zero-amount row on
// first access.
func (h *BalanceHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Balances.GetOrCreate(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "amount_cents": b.AmountCents,
        "updated_at":   b.UpdatedAt,
    })
}
