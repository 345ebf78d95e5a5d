package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/iliyamo/gadget-market/internal/handler"
	"github.com/iliyamo/gadget-market/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while the profile
// endpoints live under /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	auth := e.Group("/v1/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/refresh-access", a.RefreshAccess)
	// Logout parses its own bearer so it works with expired middleware state.
	auth.POST("/logout", a.Logout)

	me := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
	me.PUT("/me", a.UpdateMe)
}
