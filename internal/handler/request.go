package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gadget-market/internal/market"
	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/iliyamo/gadget-market/internal/repository"
)

// RequestHandler bundles dependencies for purchase request endpoints.
// All state transitions run inside a transaction with the affected
// rows locked, so concurrent buyers and sellers serialize on the
// listing instead of double-spending it.
type RequestHandler struct {
	Listings *repository.ListingRepo
	Requests *repository.RequestRepo
}

func NewRequestHandler(l *repository.ListingRepo, r *repository.RequestRepo) *RequestHandler {
	if l == nil || r == nil {
		panic("nil repository passed to NewRequestHandler")
	}
	return &RequestHandler{Listings: l, Requests: r}
}

type createRequestReq struct {
	ListingID uint64 `json:"listing_id"`
}

type requestResp struct {
	ID        uint64 `json:"id"`
	ListingID uint64 `json:"listing_id"`
	BuyerID   uint64 `json:"buyer_id"`
	SellerID  uint64 `json:"seller_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func toRequestResp(pr *model.PurchaseRequest) requestResp {
	return requestResp{
		ID: pr.ID, ListingID: pr.ListingID, BuyerID: pr.BuyerID,
		SellerID: pr.SellerID, Status: pr.Status,
		CreatedAt: pr.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create files a pending purchase request against an active listing.
// The listing row is locked so the active check, the duplicate check
// and the insert observe one consistent state.
func (h *RequestHandler) Create(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRequestReq
	if err := c.Bind(&req); err != nil || req.ListingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Listings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	listing, err := h.Listings.GetForUpdateTx(ctx, tx, req.ListingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return marketError(c, market.Errorf(market.ErrNotFound, "listing not found"))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hasPending, err := h.Requests.HasPendingTx(ctx, tx, listing.ID, buyerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := market.CanCreateRequest(listing, buyerID, hasPending); err != nil {
		return marketError(c, err)
	}

	pr := &model.PurchaseRequest{ListingID: listing.ID, BuyerID: buyerID, SellerID: listing.SellerID}
	if err := h.Requests.CreateTx(ctx, tx, pr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create request failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, toRequestResp(pr))
}

// Accept marks a pending request as accepted.  The listing stays
// active: acceptance authorizes the buyer to check out but nothing is
// final until the order exists, and the seller may accept several
// requests and let the first checkout win.
func (h *RequestHandler) Accept(c echo.Context) error {
	return h.decide(c, model.RequestAccepted)
}

// Reject marks a pending request as rejected.  Rejection is allowed
// even after the listing sold, so sellers can tidy up leftovers.
func (h *RequestHandler) Reject(c echo.Context) error {
	return h.decide(c, model.RequestRejected)
}

func (h *RequestHandler) decide(c echo.Context, status string) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Listings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Same global lock order as checkout: learn the listing id from an
	// unlocked read, lock the listing, then lock the request.
	pr, err := h.Requests.GetTx(ctx, tx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return marketError(c, market.Errorf(market.ErrNotFound, "request not found"))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if status == model.RequestAccepted {
		listing, err := h.Listings.GetForUpdateTx(ctx, tx, pr.ListingID)
		if err != nil {
			return storageError(c, err, "query failed")
		}
		pr, err = h.Requests.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return marketError(c, market.Errorf(market.ErrNotFound, "request not found"))
			}
			return storageError(c, err, "query failed")
		}
		if err := market.CanAcceptRequest(listing, pr, sellerID); err != nil {
			return marketError(c, err)
		}
	} else {
		// Reject touches only the request row, so a single lock is safe.
		pr, err = h.Requests.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return marketError(c, market.Errorf(market.ErrNotFound, "request not found"))
			}
			return storageError(c, err, "query failed")
		}
		if err := market.CanRejectRequest(pr, sellerID); err != nil {
			return marketError(c, err)
		}
	}

	ok, err := h.Requests.SetStatusTx(ctx, tx, pr.ID, status)
	if err != nil {
		return storageError(c, err, "update failed")
	}
	if !ok {
		return marketError(c, market.Errorf(market.ErrConflict, "request already decided"))
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	pr.Status = status
	return c.JSON(http.StatusOK, toRequestResp(pr))
}

// ListMine returns the authenticated buyer's own requests with
// listing context.
func (h *RequestHandler) ListMine(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Requests.ListByBuyer(ctx, buyerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": rows, "count": len(rows)})
}

// ListIncoming returns requests against the authenticated seller's
// listings.  The projection exposes only the buyer's name and
// location; contact details stay private until an order exists.
func (h *RequestHandler) ListIncoming(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Requests.ListBySeller(ctx, sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": rows, "count": len(rows)})
}
