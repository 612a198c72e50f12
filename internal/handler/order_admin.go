package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/model"
    "github.com/ramunasb/hotel-reservation/internal/repository"
)

// AdminOrderHandler serves the back-office order views. Routes using
// it are registered behind RequireRole("ADMIN").
type AdminOrderHandler struct {
    Orders *repository.OrderRepo
}

func NewAdminOrderHandler(o *repository.OrderRepo) *AdminOrderHandler {
    return &AdminOrderHandler{Orders: o}
}

// List returns every order with client and hotel info, newest first.
func (h *AdminOrderHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    orders, err := h.Orders.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

type orderUpdateReq struct {
    Status     string `json:"status"`
    RoomNumber int32  `json:"room_number"`
    Floor      int32  `json:"floor"`
    StatusNote string `json:"status_note"`
}

// Update applies the combined back-office edit: the order status and
// the room assignment details. All input is validated before any
// write, and both updates run in one transaction so a half-applied
// edit cannot exist.
func (h *AdminOrderHandler) Update(c echo.Context) error {
    orderID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }
    var req orderUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
    if !model.ValidOrderStatus(req.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be ORDERED, PREPARING or READY"})
    }
    if req.RoomNumber < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number must not be negative"})
    }
    if req.Floor < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "floor must not be negative"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tx, err := h.Orders.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    details := model.AdminDetails{
        RoomNumber: req.RoomNumber,
        Floor:      req.Floor,
        StatusNote: req.StatusNote,
    }
    if err := h.Orders.UpdateWithDetailsTx(ctx, tx, orderID, req.Status, details); err != nil {
        if err == repository.ErrOrderNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
    }
    committed = true

    return c.JSON(http.StatusOK, echo.Map{
        "id":          orderID,
        "status":      req.Status,
        "room_number": req.RoomNumber,
        "floor":       req.Floor,
        "status_note": req.StatusNote,
    })
}
