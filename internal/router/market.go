package router

// This file registers the marketplace surface: the public catalogue
// and the authenticated buyer/seller routes for listings, purchase
// requests and checkout.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gadget-market/internal/handler"
	"github.com/iliyamo/gadget-market/internal/middleware"
)

// RegisterPublic registers the guest-visible catalogue endpoints.
// The optional cache middleware (Redis-backed) is applied only here;
// authenticated views must never be served from cache.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/listings", l.Browse)
	g.GET("/listings/:id", l.Get)
}

// RegisterMarket registers the authenticated marketplace endpoints
// under /v1.  All routes require a valid JWT; per-operation role and
// ownership rules are enforced in the handlers.
func RegisterMarket(e *echo.Echo, l *handler.ListingHandler, r *handler.RequestHandler, o *handler.OrderHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("buyer", "seller", "admin"),
	)

	// ---- Listings ----
	g.POST("/listings", l.Create)

	// ---- Purchase requests ----
	g.POST("/requests", r.Create)
	g.GET("/requests/my-requests", r.ListMine)
	g.GET("/requests/incoming", r.ListIncoming)
	g.PUT("/requests/:id/accept", r.Accept)
	g.PUT("/requests/:id/reject", r.Reject)

	// ---- Orders ----
	g.POST("/orders", o.Checkout)
	g.GET("/orders/my-orders", o.ListMine)
}
