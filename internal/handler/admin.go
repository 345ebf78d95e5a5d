package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gadget-market/internal/repository"
)

// AdminHandler bundles dependencies for the administrative surface.
// Every route behind it is already gated on the admin role by the
// router; the handlers only add per-operation guards.
type AdminHandler struct {
	Admin *repository.AdminRepo
}

func NewAdminHandler(a *repository.AdminRepo) *AdminHandler {
	if a == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Admin: a}
}

// ListUsers returns every account with role and contact fields.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Admin.ListUsers(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": rows, "count": len(rows)})
}

// ListingsFull returns every listing including the seller payout and
// the platform margin.  This is the only surface where seller_price
// is visible next to the public price.
func (h *AdminHandler) ListingsFull(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Admin.ListListingsWithProfit(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": rows, "count": len(rows)})
}

// SoldItems returns completed trades joined with both parties.
func (h *AdminHandler) SoldItems(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Admin.ListSoldItems(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sold_items": rows, "count": len(rows)})
}

// DeleteUser removes an account and everything hanging off it:
// orders, requests, listings and sessions.  Admins cannot delete
// themselves.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id == adminID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Admin.DeleteUserCascade(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteListing removes a listing along with its requests and orders.
func (h *AdminHandler) DeleteListing(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Admin.DeleteListingCascade(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
