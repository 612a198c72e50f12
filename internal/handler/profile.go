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

// ProfileHandler serves the current user's profile. The profile row
// always exists (created at registration); only its fields change.
type ProfileHandler struct {
    Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
    return &ProfileHandler{Profiles: p}
}

type profileReq struct {
    Name      string `json:"name"`
    Lastname  string `json:"lastname"`
    BirthDate string `json:"birth_date"`
    Address   string `json:"address"`
    City      string `json:"city"`
    Country   string `json:"country"`
}

type profileResp struct {
    Name      string `json:"name"`
    Lastname  string `json:"lastname"`
    BirthDate string `json:"birth_date"`
    Address   string `json:"address"`
    City      string `json:"city"`
    Country   string `json:"country"`
    Complete  bool   `json:"complete"`
}

func toProfileResp(p *model.Profile) profileResp {
    return profileResp{
        Name:      p.Name,
        Lastname:  p.Lastname,
        BirthDate: p.BirthDate,
        Address:   p.Address,
        City:      p.City,
        Country:   p.Country,
        Complete:  p.IsComplete(),
    }
}

// Get returns the current profile plus its completeness flag, so the
// client knows up front whether the catalog is reachable.
func (h *ProfileHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Profiles.GetByUserID(ctx, uid)
    if err != nil {
        if err == repository.ErrProfileNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toProfileResp(p))
}

// Update overwrites the six profile fields. Individual fields may be
// left blank, but a blank field keeps the profile incomplete and the
// catalog closed.
func (h *ProfileHandler) Update(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req profileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    p := model.Profile{
        UserID:    uid,
        Name:      strings.TrimSpace(req.Name),
        Lastname:  strings.TrimSpace(req.Lastname),
        BirthDate: strings.TrimSpace(req.BirthDate),
        Address:   strings.TrimSpace(req.Address),
        City:      strings.TrimSpace(req.City),
        Country:   strings.TrimSpace(req.Country),
    }
    if p.BirthDate != "" {
        if _, err := time.Parse("2006-01-02", p.BirthDate); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date must be YYYY-MM-DD"})
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Profiles.Update(ctx, &p); err != nil {
        if err == repository.ErrProfileNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, toProfileResp(&p))
}
