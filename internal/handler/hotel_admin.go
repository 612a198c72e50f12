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

// AdminHotelHandler manages the catalog contents. Routes using it
// are registered behind RequireRole("ADMIN").
type AdminHotelHandler struct {
    Hotels *repository.HotelRepo
}

func NewAdminHotelHandler(h *repository.HotelRepo) *AdminHotelHandler {
    return &AdminHotelHandler{Hotels: h}
}

type hotelCreateReq struct {
    Name         string `json:"name"`
    Type         string `json:"type"`
    Stars        int    `json:"stars"`
    Description  string `json:"description"`
    Address      string `json:"address"`
    PriceCents   int64  `json:"price_cents"`
    MaxOccupancy int    `json:"max_occupancy"`
    Availability int64  `json:"availability"`
}

// Create validates and inserts a new hotel.
func (h *AdminHotelHandler) Create(c echo.Context) error {
    var req hotelCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    req.Name = strings.TrimSpace(req.Name)
    req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    if !model.ValidHotelType(req.Type) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be VIP, GOLD, PREMIUM or STANDARD"})
    }
    if req.Stars < 1 || req.Stars > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be between 1 and 5"})
    }
    if req.MaxOccupancy < 1 || req.MaxOccupancy > 4 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_occupancy must be between 1 and 4"})
    }
    if req.PriceCents < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must not be negative"})
    }
    if req.Availability < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "availability must not be negative"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hotel := model.Hotel{
        Name:         req.Name,
        Type:         req.Type,
        Stars:        uint8(req.Stars),
        Description:  req.Description,
        Address:      req.Address,
        PriceCents:   req.PriceCents,
        MaxOccupancy: uint8(req.MaxOccupancy),
        Availability: req.Availability,
    }
    if err := h.Hotels.Create(ctx, &hotel); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
    }
    return c.JSON(http.StatusCreated, toHotelResp(&hotel))
}

// Delete removes a hotel from the catalog. A hotel with order
// history is refused; deleting it would orphan paid bookings.
func (h *AdminHotelHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Hotels.DeleteByID(ctx, id); err != nil {
        switch err {
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "hotel has orders and cannot be deleted"})
        case repository.ErrHotelNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
