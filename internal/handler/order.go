package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gadget-market/internal/market"
	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/iliyamo/gadget-market/internal/queue"
	"github.com/iliyamo/gadget-market/internal/repository"
	queue_publisher "github.com/iliyamo/gadget-market/internal/service"
)

// OrderHandler bundles dependencies for checkout and order views.
type OrderHandler struct {
	Listings *repository.ListingRepo
	Requests *repository.RequestRepo
	Orders   *repository.OrderRepo
}

func NewOrderHandler(l *repository.ListingRepo, r *repository.RequestRepo, o *repository.OrderRepo) *OrderHandler {
	if l == nil || r == nil || o == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Listings: l, Requests: r, Orders: o}
}

// checkoutReq flattens the shipping fields into the top-level body,
// matching the client wire format.
type checkoutReq struct {
	RequestID uint64 `json:"request_id"`
	market.ShippingDetails
}

type orderResp struct {
	ID            uint64  `json:"id"`
	RequestID     uint64  `json:"request_id"`
	ListingID     uint64  `json:"listing_id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	PaymentMethod string  `json:"payment_method"`
	CreatedAt     string  `json:"created_at"`
}

// Checkout finalizes an accepted request into an order.  The request
// and listing rows are locked for the duration; the single
// transaction creates the order, closes the listing and rejects every
// other live request, so exactly one buyer can ever win a listing.
func (h *OrderHandler) Checkout(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil || req.RequestID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request_id required"})
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

	// Resolve the listing id without locking the request, then take
	// row locks in the global order: listing first, then request.
	// Concurrent checkouts for different requests on one listing all
	// queue on the listing lock instead of deadlocking.
	probe, err := h.Requests.GetTx(ctx, tx, req.RequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return marketError(c, market.Errorf(market.ErrNotFound, "request not found"))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	listing, err := h.Listings.GetForUpdateTx(ctx, tx, probe.ListingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return marketError(c, market.Errorf(market.ErrNotFound, "listing not found"))
		}
		return storageError(c, err, "query failed")
	}

	// Re-read under lock: the unlocked probe may predate a concurrent
	// decision on this request.
	pr, err := h.Requests.GetForUpdateTx(ctx, tx, req.RequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return marketError(c, market.Errorf(market.ErrNotFound, "request not found"))
		}
		return storageError(c, err, "query failed")
	}

	alreadyOrdered, err := h.Orders.ExistsForRequestTx(ctx, tx, pr.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := market.CheckoutGate(pr, buyerID, alreadyOrdered, req.ShippingDetails); err != nil {
		return marketError(c, err)
	}

	o := &model.Order{
		RequestID:       pr.ID,
		ListingID:       pr.ListingID,
		BuyerID:         pr.BuyerID,
		SellerID:        pr.SellerID,
		ShippingName:    req.Name,
		ShippingEmail:   req.Email,
		ShippingPhone:   req.Phone,
		ShippingAddress: req.Address,
		ShippingPincode: req.Pincode,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := h.Orders.CreateTx(ctx, tx, o); err != nil {
		return storageError(c, err, "create order failed")
	}

	sold, err := h.Listings.MarkSoldTx(ctx, tx, listing.ID)
	if err != nil {
		return storageError(c, err, "update failed")
	}
	if !sold {
		// Another checkout closed the listing between accept and now.
		return marketError(c, market.Errorf(market.ErrConflict, "listing already sold"))
	}

	if err := h.Requests.RejectOthersTx(ctx, tx, listing.ID, pr.ID); err != nil {
		return storageError(c, err, "update failed")
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Publish the event off the request path; a broker outage must not
	// fail a committed checkout.
	ev := queue.OrderPlacedEvent{
		OrderID:       o.ID,
		RequestID:     o.RequestID,
		ListingID:     o.ListingID,
		BuyerID:       o.BuyerID,
		SellerID:      o.SellerID,
		Title:         listing.Title,
		Price:         listing.Price,
		PaymentMethod: o.PaymentMethod,
		PlacedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishOrderPlaced(pubCtx, ev); err != nil {
			log.Printf("order %d: publish event failed: %v", o.ID, err)
		}
	}()

	return c.JSON(http.StatusCreated, orderResp{
		ID:            o.ID,
		RequestID:     o.RequestID,
		ListingID:     o.ListingID,
		Title:         listing.Title,
		Price:         listing.Price,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// ordersView decides which side of a trade a role sees on my-orders:
// buyers see their purchases, every other role sees the sales side.
func ordersView(role string) string {
	if role == "buyer" {
		return "buyer"
	}
	return "seller"
}

// ListMine returns completed trades for the authenticated user: the
// buyer view for buyers, the sales view otherwise.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var rows []repository.OrderRow
	if ordersView(getRole(c)) == "buyer" {
		rows, err = h.Orders.ListByBuyer(ctx, userID)
	} else {
		rows, err = h.Orders.ListBySeller(ctx, userID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": rows, "count": len(rows)})
}
