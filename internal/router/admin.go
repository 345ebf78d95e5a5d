package router

// This file registers admin-only routes.  All routes are mounted
// under /v1/admin and require a JWT token as well as the admin role.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gadget-market/internal/handler"
	"github.com/iliyamo/gadget-market/internal/middleware"
)

// RegisterAdmin registers the administrative oversight endpoints.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)
	g.GET("/users", a.ListUsers)
	g.DELETE("/users/:id", a.DeleteUser)
	g.GET("/listings_full", a.ListingsFull)
	g.DELETE("/listings/:id", a.DeleteListing)
	g.GET("/sold_items", a.SoldItems)
}
