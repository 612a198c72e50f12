package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/handler"
    "github.com/ramunasb/hotel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the token lifecycle endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
// The rate limiter is applied to the whole auth group so that
// credential-stuffing attempts burn through their bucket quickly.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
    g := e.Group("/v1/auth")
    if rateLimit != nil {
        g.Use(rateLimit)
    }
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Logout lives outside the JWT middleware: a client holding only a
    // refresh token can still terminate its session.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}
