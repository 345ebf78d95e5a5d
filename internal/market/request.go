package market

import "github.com/iliyamo/gadget-market/internal/model"

// CanCreateRequest gates the creation of a purchase request against a
// listing the caller has already fetched.  The listing must still be
// active, must not belong to the buyer (no self-purchase), and the
// buyer must not already have a pending request on it.  Re-requesting
// after a rejection is allowed and produces a brand-new row.
func CanCreateRequest(l *model.Listing, buyerID uint64, hasPending bool) error {
    if l.Status != model.ListingActive {
        return Errorf(ErrInvalidState, "listing is %s, not active", l.Status)
    }
    if l.SellerID == buyerID {
        return Errorf(ErrForbidden, "cannot request your own listing")
    }
    if hasPending {
        return Errorf(ErrConflict, "a pending request for this listing already exists")
    }
    return nil
}

// CanAcceptRequest gates the pending→accepted transition.  Only the
// listing's owner may accept, the request must still be pending and
// the listing must still be active.  Accepting is a soft go-ahead: it
// does not close the listing or reject competitors.  That happens
// only when the buyer finalizes checkout, so a seller may hold
// several accepted offers until one buyer actually pays.
func CanAcceptRequest(l *model.Listing, r *model.PurchaseRequest, sellerID uint64) error {
    if r.SellerID != sellerID {
        return Errorf(ErrForbidden, "not the seller of this listing")
    }
    if r.Status != model.RequestPending {
        return Errorf(ErrInvalidState, "request is %s, not pending", r.Status)
    }
    if l.Status != model.ListingActive {
        return Errorf(ErrInvalidState, "listing is %s, not active", l.Status)
    }
    return nil
}

// CanRejectRequest gates the pending→rejected transition.  Same
// authorization as accept, but the listing's status does not matter:
// leftover pending requests on a sold listing can still be rejected
// by hand.
func CanRejectRequest(r *model.PurchaseRequest, sellerID uint64) error {
    if r.SellerID != sellerID {
        return Errorf(ErrForbidden, "not the seller of this listing")
    }
    if r.Status != model.RequestPending {
        return Errorf(ErrInvalidState, "request is %s, not pending", r.Status)
    }
    return nil
}
