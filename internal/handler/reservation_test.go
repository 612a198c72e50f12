package handler

import (
    "database/sql"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/model"
    "github.com/ramunasb/hotel-reservation/internal/repository"
)

func TestStayNights(t *testing.T) {
    today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
    cases := []struct {
        name    string
        in, out string
        nights  int64
        err     error
    }{
        {"two nights", "2026-09-10", "2026-09-12", 2, nil},
        {"starts today", "2026-09-01", "2026-09-02", 1, nil},
        {"check-in in the past", "2026-08-31", "2026-09-02", 0, errStaleDates},
        {"both in the past", "2026-08-01", "2026-08-05", 0, errStaleDates},
        {"zero nights", "2026-09-10", "2026-09-10", 0, errInvalidStay},
        {"inverted", "2026-09-12", "2026-09-10", 0, errInvalidStay},
        {"garbage check-in", "12/09/2026", "2026-09-13", 0, errBadDateFormat},
        {"garbage check-out", "2026-09-12", "soon", 0, errBadDateFormat},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            n, err := stayNights(tc.in, tc.out, today)
            if !errors.Is(err, tc.err) {
                t.Fatalf("err = %v, want %v", err, tc.err)
            }
            if n != tc.nights {
                t.Fatalf("nights = %d, want %d", n, tc.nights)
            }
        })
    }
}

// newReservationTest wires a ReservationHandler onto a mocked database
// and builds an Echo context for POST /v1/hotels/1/orders.
func newReservationTest(t *testing.T, body string) (*ReservationHandler, sqlmock.Sqlmock, echo.Context, *httptest.ResponseRecorder, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    h := NewReservationHandler(
        repository.NewHotelRepo(db),
        repository.NewBalanceRepo(db),
        repository.NewOrderRepo(db),
        repository.NewProfileRepo(db),
    )

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/hotels/1/orders", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath("/v1/hotels/:id/orders")
    c.SetParamNames("id")
    c.SetParamValues("1")
    c.Set("user_id", float64(7))
    c.Set("role", "CUSTOMER")

    return h, mock, c, rec, func() { db.Close() }
}

func completeProfileRows() *sqlmock.Rows {
    return sqlmock.NewRows([]string{"id", "user_id", "name", "lastname", "birth_date", "address", "city", "country", "updated_at"}).
        AddRow(5, 7, "Jonas", "Basanavicius", "1990-04-01", "Main st 1", "Vilnius", "Lithuania", time.Now())
}

func incompleteProfileRows() *sqlmock.Rows {
    return sqlmock.NewRows([]string{"id", "user_id", "name", "lastname", "birth_date", "address", "city", "country", "updated_at"}).
        AddRow(5, 7, "Jonas", "", "", "", "", "", time.Now())
}

// price 10000 cents per night, availability 3.
func reservableHotelRows() *sqlmock.Rows {
    return sqlmock.NewRows([]string{
        "id", "name", "type", "stars", "description", "address",
        "price_cents", "max_occupancy", "availability", "created_at", "updated_at",
    }).AddRow(1, "Grand", "GOLD", 4, "desc", "Main st 1", 10000, 2, 3, time.Now(), time.Now())
}

func futureDate(days int) string {
    return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func reserveBody(checkIn, checkOut string) string {
    b, _ := json.Marshal(map[string]string{"check_in": checkIn, "check_out": checkOut})
    return string(b)
}

func TestReservationCreateSuccess(t *testing.T) {
    checkIn := futureDate(1)
    checkOut := futureDate(3) // 2 nights, total 20000
    h, mock, c, rec, done := newReservationTest(t, reserveBody(checkIn, checkOut))
    defer done()

    mock.ExpectQuery("FROM profiles WHERE user_id").WithArgs(7).WillReturnRows(completeProfileRows())
    mock.ExpectQuery("FROM hotels WHERE id").WithArgs(1).WillReturnRows(reservableHotelRows())
    mock.ExpectQuery("FROM balances WHERE user_id").WithArgs(7).
        WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount_cents", "updated_at"}).
            AddRow(1, 7, 25000, time.Now()))
    mock.ExpectBegin()
    mock.ExpectQuery("FOR UPDATE").WithArgs(1).
        WillReturnRows(sqlmock.NewRows([]string{"price_cents", "availability"}).AddRow(10000, 3))
    mock.ExpectExec("UPDATE balances SET amount_cents = amount_cents -").
        WithArgs(20000, 7, 20000).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec("UPDATE hotels SET availability = availability - 1").
        WithArgs(1).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec("INSERT INTO admin_details").
        WithArgs(5, 0, 0, model.DefaultStatusNote).
        WillReturnResult(sqlmock.NewResult(11, 1))
    mock.ExpectExec("INSERT INTO orders").
        WithArgs(5, 1, checkIn, checkOut, 20000, model.OrderStatusOrdered, 11).
        WillReturnResult(sqlmock.NewResult(33, 1))
    mock.ExpectCommit()

    if err := h.Create(c); err != nil {
        t.Fatalf("Create returned error: %v", err)
    }
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
    }

    var resp map[string]any
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("decode response: %v", err)
    }
    if got := resp["order_id"].(float64); got != 33 {
        t.Fatalf("order_id = %v, want 33", got)
    }
    if got := resp["total_cents"].(float64); got != 20000 {
        t.Fatalf("total_cents = %v, want 20000", got)
    }
    if got := resp["balance_cents"].(float64); got != 5000 {
        t.Fatalf("balance_cents = %v, want 5000", got)
    }
    if got := resp["status"].(string); got != model.OrderStatusOrdered {
        t.Fatalf("status = %v, want ORDERED", got)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestReservationCreateInsufficientBalance(t *testing.T) {
    checkIn := futureDate(1)
    checkOut := futureDate(4) // 3 nights, total 30000 > 25000
    h, mock, c, rec, done := newReservationTest(t, reserveBody(checkIn, checkOut))
    defer done()

    mock.ExpectQuery("FROM profiles WHERE user_id").WithArgs(7).WillReturnRows(completeProfileRows())
    mock.ExpectQuery("FROM hotels WHERE id").WithArgs(1).WillReturnRows(reservableHotelRows())
    mock.ExpectQuery("FROM balances WHERE user_id").WithArgs(7).
        WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount_cents", "updated_at"}).
            AddRow(1, 7, 25000, time.Now()))
    mock.ExpectBegin()
    mock.ExpectQuery("FOR UPDATE").WithArgs(1).
        WillReturnRows(sqlmock.NewRows([]string{"price_cents", "availability"}).AddRow(10000, 3))
    mock.ExpectExec("UPDATE balances SET amount_cents = amount_cents -").
        WithArgs(30000, 7, 30000).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectRollback()

    if err := h.Create(c); err != nil {
        t.Fatalf("Create returned error: %v", err)
    }
    if rec.Code != http.StatusUnprocessableEntity {
        t.Fatalf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
    }
    if !strings.Contains(rec.Body.String(), "insufficient balance") {
        t.Fatalf("body = %s, want insufficient balance", rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestReservationCreateStaleDates(t *testing.T) {
    yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
    h, mock, c, rec, done := newReservationTest(t, reserveBody(yesterday, futureDate(2)))
    defer done()

    // Date validation happens before any balance or transaction work;
    // only the read-only lookups run.
    mock.ExpectQuery("FROM profiles WHERE user_id").WithArgs(7).WillReturnRows(completeProfileRows())
    mock.ExpectQuery("FROM hotels WHERE id").WithArgs(1).WillReturnRows(reservableHotelRows())

    if err := h.Create(c); err != nil {
        t.Fatalf("Create returned error: %v", err)
    }
    if rec.Code != http.StatusUnprocessableEntity {
        t.Fatalf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
    }
    if !strings.Contains(rec.Body.String(), "stale dates") {
        t.Fatalf("body = %s, want stale dates", rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestReservationCreateInvalidStay(t *testing.T) {
    sameDay := futureDate(2)
    h, mock, c, rec, done := newReservationTest(t, reserveBody(sameDay, sameDay))
    defer done()

    mock.ExpectQuery("FROM profiles WHERE user_id").WithArgs(7).WillReturnRows(completeProfileRows())
    mock.ExpectQuery("FROM hotels WHERE id").WithArgs(1).WillReturnRows(reservableHotelRows())

    if err := h.Create(c); err != nil {
        t.Fatalf("Create returned error: %v", err)
    }
    if rec.Code != http.StatusUnprocessableEntity {
        t.Fatalf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
    }
    if !strings.Contains(rec.Body.String(), "invalid stay") {
        t.Fatalf("body = %s, want invalid stay", rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestReservationCreateIncompleteProfile(t *testing.T) {
    h, mock, c, rec, done := newReservationTest(t, reserveBody(futureDate(1), futureDate(3)))
    defer done()

    mock.ExpectQuery("FROM profiles WHERE user_id").WithArgs(7).WillReturnRows(incompleteProfileRows())

    if err := h.Create(c); err != nil {
        t.Fatalf("Create returned error: %v", err)
    }
    if rec.Code != http.StatusForbidden {
        t.Fatalf("status = %d, want 403; body: %s", rec.Code, rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}

func TestReservationCreateHotelMissing(t *testing.T) {
    h, mock, c, rec, done := newReservationTest(t, reserveBody(futureDate(1), futureDate(3)))
    defer done()

    mock.ExpectQuery("FROM profiles WHERE user_id").WithArgs(7).WillReturnRows(completeProfileRows())
    mock.ExpectQuery("FROM hotels WHERE id").WithArgs(1).WillReturnError(sql.ErrNoRows)

    if err := h.Create(c); err != nil {
        t.Fatalf("Create returned error: %v", err)
    }
    if rec.Code != http.StatusNotFound {
        t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatal(err)
    }
}
