package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gadget-market/internal/market"
	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/iliyamo/gadget-market/internal/repository"
)

// ListingHandler bundles dependencies for listing endpoints.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

func NewListingHandler(l *repository.ListingRepo) *ListingHandler {
	if l == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{Listings: l}
}

type listingResp struct {
	ID           uint64   `json:"id"`
	SellerID     uint64   `json:"seller_id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Condition    string   `json:"condition"`
	Description  string   `json:"description"`
	WorkingParts string   `json:"working_parts,omitempty"`
	Location     string   `json:"location"`
	Price        float64  `json:"price"`
	Photos       []string `json:"photos"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
}

// sellerPrice never leaves the seller/admin surfaces; the public view
// carries only the display price.
func toListingResp(l *model.Listing) listingResp {
	return listingResp{
		ID: l.ID, SellerID: l.SellerID, Title: l.Title, Category: l.Category,
		Brand: l.Brand, Model: l.Model, Condition: l.Condition,
		Description: l.Description, WorkingParts: l.WorkingParts,
		Location: l.Location, Price: l.Price, Photos: l.Photos,
		Status: l.Status, CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create posts a new listing.  Any authenticated account may post;
// the caller becomes the listing's seller and ownership gates every
// later mutation.  The body carries the seller's expected payout
// under "price"; the public display price is derived once here and
// stored alongside it.
func (h *ListingHandler) Create(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var in market.NewListing
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := market.ValidateNewListing(in); err != nil {
		return marketError(c, err)
	}
	quote, err := market.ComputeListingPrice(in.SellerPrice)
	if err != nil {
		return marketError(c, err)
	}

	l := &model.Listing{
		SellerID:     sellerID,
		Title:        in.Title,
		Category:     in.Category,
		Brand:        in.Brand,
		Model:        in.Model,
		Condition:    in.Condition,
		Description:  in.Description,
		WorkingParts: in.WorkingParts,
		Location:     in.Location,
		SellerPrice:  in.SellerPrice,
		Price:        quote.Price,
		Photos:       in.Photos,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Create(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}

	resp := toListingResp(l)
	return c.JSON(http.StatusCreated, echo.Map{
		"listing":         resp,
		"expected_profit": quote.Profit,
	})
}

// Browse is the public catalogue.  Guests see the same rows as
// authenticated buyers: active and sold listings with filters on
// free-text, category, condition and price range.
func (h *ListingHandler) Browse(c echo.Context) error {
	q := repository.ListingSearchQuery{
		Query:     c.QueryParam("q"),
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
		Sort:      c.QueryParam("sort"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = f
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = f
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Listings.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": rows, "count": len(rows)})
}

// Get returns a single listing by id.  Sold listings remain fetchable
// so order and request views can still render the item.
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toListingResp(l))
}
