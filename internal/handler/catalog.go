package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/model"
    "github.com/ramunasb/hotel-reservation/internal/repository"
)

// Catalog page size matches the original storefront; small on purpose.
const defaultPageSize = 2

// CatalogHandler serves the hotel catalog to customers. Every
// endpoint is gated on a completed profile.
type CatalogHandler struct {
    Hotels   *repository.HotelRepo
    Profiles *repository.ProfileRepo
}

func NewCatalogHandler(h *repository.HotelRepo, p *repository.ProfileRepo) *CatalogHandler {
    return &CatalogHandler{Hotels: h, Profiles: p}
}

type hotelResp struct {
    ID           uint64 `json:"id"`
    Name         string `json:"name"`
    Type         string `json:"type"`
    Stars        uint8  `json:"stars"`
    Description  string `json:"description"`
    Address      string `json:"address"`
    PriceCents   int64  `json:"price_cents"`
    MaxOccupancy uint8  `json:"max_occupancy"`
    Availability int64  `json:"availability"`
}

func toHotelResp(h *model.Hotel) hotelResp {
    return hotelResp{
        ID:           h.ID,
        Name:         h.Name,
        Type:         h.Type,
        Stars:        h.Stars,
        Description:  h.Description,
        Address:      h.Address,
        PriceCents:   h.PriceCents,
        MaxOccupancy: h.MaxOccupancy,
        Availability: h.Availability,
    }
}

// gate loads the caller's profile and writes a 403 when it is not
// complete yet. It returns (0, false) after writing an error
// response, so callers simply return nil in that case.
func (h *CatalogHandler) gate(ctx context.Context, c echo.Context) (uint64, bool) {
    uid, err := getUserID(c)
    if err != nil {
        _ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        return 0, false
    }
    p, err := h.Profiles.GetByUserID(ctx, uid)
    if err != nil {
        _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
        return 0, false
    }
    if !p.IsComplete() {
        _ = c.JSON(http.StatusForbidden, echo.Map{"error": "complete your profile to access the catalog"})
        return 0, false
    }
    return uid, true
}

// List returns one page of the catalog.
func (h *CatalogHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, ok := h.gate(ctx, c); !ok {
        return nil
    }

    page := 1
    if v := c.QueryParam("page"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
        }
        page = n
    }
    pageSize := defaultPageSize
    if v := c.QueryParam("page_size"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil || n < 1 || n > 100 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page_size"})
        }
        pageSize = n
    }

    hotels, total, err := h.Hotels.List(ctx, page, pageSize)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]hotelResp, 0, len(hotels))
    for _, ht := range hotels {
        out = append(out, toHotelResp(ht))
    }
    totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
    return c.JSON(http.StatusOK, echo.Map{
        "hotels":      out,
        "page":        page,
        "page_size":   pageSize,
        "total":       total,
        "total_pages": totalPages,
    })
}

// Filter returns hotels matching every set filter exactly; empty
// filters return everything.
func (h *CatalogHandler) Filter(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, ok := h.gate(ctx, c); !ok {
        return nil
    }

    f := repository.HotelFilter{Name: strings.TrimSpace(c.QueryParam("name"))}
    if v := c.QueryParam("stars"); v != "" {
        n, err := strconv.ParseUint(v, 10, 8)
        if err != nil || n < 1 || n > 5 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stars"})
        }
        f.Stars = uint8(n)
    }
    // "quantity" is the storefront's name for the occupancy limit.
    if v := c.QueryParam("quantity"); v != "" {
        n, err := strconv.ParseUint(v, 10, 8)
        if err != nil || n < 1 || n > 4 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
        }
        f.MaxOccupancy = uint8(n)
    }

    hotels, err := h.Hotels.Filter(ctx, f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]hotelResp, 0, len(hotels))
    for _, ht := range hotels {
        out = append(out, toHotelResp(ht))
    }
    return c.JSON(http.StatusOK, echo.Map{"hotels": out})
}

// Detail returns a single hotel, the data source of the reservation
// form.
func (h *CatalogHandler) Detail(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, ok := h.gate(ctx, c); !ok {
        return nil
    }

    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
    }
    ht, err := h.Hotels.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrHotelNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toHotelResp(ht))
}
