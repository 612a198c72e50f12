package handler

import (
    "net/http"
    "net/http/httptest"
    "regexp"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/repository"
)

func newAdminContext(t *testing.T, method, target, body, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    var reader *strings.Reader
    if body == "" {
        reader = strings.NewReader("{}")
    } else {
        reader = strings.NewReader(body)
    }
    req := httptest.NewRequest(method, target, reader)
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if paramName != "" {
        c.SetParamNames(paramName)
        c.SetParamValues(paramValue)
    }
    c.Set("user_id", float64(1))
    c.Set("role", "ADMIN")
    return c, rec
}

func TestSetBalanceRejectsNegative(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()
    h := NewAdminUserHandler(repository.NewUserRepo(db), repository.NewBalanceRepo(db))

    c, rec := newAdminContext(t, http.MethodPut, "/v1/admin/users/7/balance",
        `{"amount_cents":-100}`, "id", "7")

    if err := h.SetBalance(c); err != nil {
        t.Fatalf("SetBalance returned error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
    }
    // Nothing was written.
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestSetBalanceRejectsNonNumeric(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()
    h := NewAdminUserHandler(repository.NewUserRepo(db), repository.NewBalanceRepo(db))

    c, rec := newAdminContext(t, http.MethodPut, "/v1/admin/users/7/balance",
        `{"amount_cents":"lots"}`, "id", "7")

    if err := h.SetBalance(c); err != nil {
        t.Fatalf("SetBalance returned error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestSetBalanceOverwrites(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()
    h := NewAdminUserHandler(repository.NewUserRepo(db), repository.NewBalanceRepo(db))

    mock.ExpectQuery("FROM users WHERE id").
        WithArgs(7).
        WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
            AddRow(7, "a@example.com", "x", "CUSTOMER", true, time.Now(), time.Now()))
    mock.ExpectQuery("FROM balances WHERE user_id").
        WithArgs(7).
        WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount_cents", "updated_at"}).
            AddRow(1, 7, 100, time.Now()))
    mock.ExpectExec(`UPDATE balances SET amount_cents = \?`).
        WithArgs(25000, 7).
        WillReturnResult(sqlmock.NewResult(0, 1))

    c, rec := newAdminContext(t, http.MethodPut, "/v1/admin/users/7/balance",
        `{"amount_cents":25000}`, "id", "7")

    if err := h.SetBalance(c); err != nil {
        t.Fatalf("SetBalance returned error: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestAdminHotelCreateValidation(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()
    h := NewAdminHotelHandler(repository.NewHotelRepo(db))

    cases := []struct {
        name string
        body string
        want string
    }{
        {"bad type", `{"name":"Grand","type":"LUXURY","stars":4,"price_cents":100,"max_occupancy":2,"availability":1}`, "type"},
        {"stars too high", `{"name":"Grand","type":"GOLD","stars":6,"price_cents":100,"max_occupancy":2,"availability":1}`, "stars"},
        {"occupancy too high", `{"name":"Grand","type":"GOLD","stars":4,"price_cents":100,"max_occupancy":5,"availability":1}`, "max_occupancy"},
        {"negative price", `{"name":"Grand","type":"GOLD","stars":4,"price_cents":-1,"max_occupancy":2,"availability":1}`, "price_cents"},
        {"negative availability", `{"name":"Grand","type":"GOLD","stars":4,"price_cents":100,"max_occupancy":2,"availability":-1}`, "availability"},
        {"missing name", `{"type":"GOLD","stars":4,"price_cents":100,"max_occupancy":2,"availability":1}`, "name"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := newAdminContext(t, http.MethodPost, "/v1/admin/hotels", tc.body, "", "")
            if err := h.Create(c); err != nil {
                t.Fatalf("Create returned error: %v", err)
            }
            if rec.Code != http.StatusBadRequest {
                t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
            }
            if !strings.Contains(rec.Body.String(), tc.want) {
                t.Fatalf("body = %s, want mention of %s", rec.Body.String(), tc.want)
            }
        })
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestAdminHotelDeleteConflict(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()
    h := NewAdminHotelHandler(repository.NewHotelRepo(db))

    mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM orders WHERE hotel_id = ?)")).
        WithArgs(3).
        WillReturnRows(sqlmock.NewRows([]string{"referenced"}).AddRow(true))

    c, rec := newAdminContext(t, http.MethodDelete, "/v1/admin/hotels/3", "", "id", "3")
    if err := h.Delete(c); err != nil {
        t.Fatalf("Delete returned error: %v", err)
    }
    if rec.Code != http.StatusConflict {
        t.Fatalf("status = %d, want 409; body: %s", rec.Code, rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestAdminOrderUpdateValidatesBeforeWriting(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()
    h := NewAdminOrderHandler(repository.NewOrderRepo(db))

    c, rec := newAdminContext(t, http.MethodPut, "/v1/admin/orders/9",
        `{"status":"SHIPPED","room_number":101,"floor":1,"status_note":"x"}`, "id", "9")

    if err := h.Update(c); err != nil {
        t.Fatalf("Update returned error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}
