package router

import (
    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/handler"
    "github.com/ramunasb/hotel-reservation/internal/middleware"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.
// Every route requires a valid JWT and the ADMIN role; being logged
// in is never enough.
func RegisterAdmin(
    e *echo.Echo,
    orders *handler.AdminOrderHandler,
    users *handler.AdminUserHandler,
    hotels *handler.AdminHotelHandler,
    jwtSecret string,
) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    g.GET("/orders", orders.List)
    g.PUT("/orders/:id", orders.Update)

    g.GET("/users", users.List)
    g.PUT("/users/:id/balance", users.SetBalance)

    g.POST("/hotels", hotels.Create)
    g.DELETE("/hotels/:id", hotels.Delete)
}
