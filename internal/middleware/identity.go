package middleware

// identity.go defines helpers shared across middleware files for
// identifying the caller when building rate-limit and cache keys.
// The JWT middleware stores the subject under "user_id" as whatever
// type the claims decoded to, so the lookup is defensive about types.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a stable string identity for the caller, or
// "anon" when the request carries no authenticated user.
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
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
