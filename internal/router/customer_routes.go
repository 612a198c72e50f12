package router

import (
    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/handler"
    "github.com/ramunasb/hotel-reservation/internal/middleware"
)

// RegisterCustomer registers the customer-facing endpoints under /v1.
// All routes require a valid JWT; the catalog and reservation handlers
// additionally gate on a completed profile.  The response cache wraps
// only the catalog reads (keys are scoped per user), and the rate
// limiter wraps the whole group.
func RegisterCustomer(
    e *echo.Echo,
    profiles *handler.ProfileHandler,
    balances *handler.BalanceHandler,
    catalog *handler.CatalogHandler,
    reservations *handler.ReservationHandler,
    jwtSecret string,
    cache echo.MiddlewareFunc,
    rateLimit echo.MiddlewareFunc,
) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    if rateLimit != nil {
        g.Use(rateLimit)
    }

    g.GET("/profile", profiles.Get)
    g.PUT("/profile", profiles.Update)
    g.GET("/balance", balances.Get)

    // Catalog reads benefit from caching; the filter endpoint is
    // registered before /hotels/:id so "filter" is not parsed as an id.
    catalogMW := []echo.MiddlewareFunc{}
    if cache != nil {
        catalogMW = append(catalogMW, cache)
    }
    g.GET("/hotels", catalog.List, catalogMW...)
    g.GET("/hotels/filter", catalog.Filter, catalogMW...)
    g.GET("/hotels/:id", catalog.Detail, catalogMW...)

    g.POST("/hotels/:id/orders", reservations.Create)
    g.GET("/my-orders", reservations.MyOrders)
    g.GET("/orders/:id", reservations.GetOrder)
}
