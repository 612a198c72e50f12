package middleware

// identity.go defines helpers shared across middleware files. Cache keys
// and rate-limit buckets both need a stable per-user identifier; requests
// without an authenticated user map to "anon".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the user_id stored in context by JWTAuth as a
// string. The JWT decoder may hand us a float64, string or integer
// depending on how the claim was encoded, so normalize through fmt.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
        return "anon"
    case float64:
        return fmt.Sprintf("%.0f", t)
    default:
        return fmt.Sprint(t)
    }
}
