package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

func callWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if role != nil {
        c.Set("role", role)
    }
    h := mw(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    if err := h(c); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return rec
}

func TestRequireRoleAllows(t *testing.T) {
    rec := callWithRole(t, RequireRole("ADMIN"), "ADMIN")
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
    rec := callWithRole(t, RequireRole("ADMIN"), "CUSTOMER")
    if rec.Code != http.StatusForbidden {
        t.Fatalf("status = %d, want 403", rec.Code)
    }
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
    rec := callWithRole(t, RequireRole("ADMIN"), nil)
    if rec.Code != http.StatusForbidden {
        t.Fatalf("status = %d, want 403", rec.Code)
    }
}

func TestRequireRoleRejectsNonString(t *testing.T) {
    rec := callWithRole(t, RequireRole("ADMIN"), 123)
    if rec.Code != http.StatusForbidden {
        t.Fatalf("status = %d, want 403", rec.Code)
    }
}

func TestRequireRoleMultiple(t *testing.T) {
    rec := callWithRole(t, RequireRole("ADMIN", "CUSTOMER"), "CUSTOMER")
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
}

func TestCurrentUserID(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    c := e.NewContext(req, httptest.NewRecorder())

    if got := currentUserID(c); got != "anon" {
        t.Fatalf("no claim: got %q, want anon", got)
    }
    c.Set("user_id", float64(42))
    if got := currentUserID(c); got != "42" {
        t.Fatalf("float claim: got %q, want 42", got)
    }
    c.Set("user_id", "7")
    if got := currentUserID(c); got != "7" {
        t.Fatalf("string claim: got %q, want 7", got)
    }
    c.Set("user_id", "")
    if got := currentUserID(c); got != "anon" {
        t.Fatalf("empty claim: got %q, want anon", got)
    }
}
