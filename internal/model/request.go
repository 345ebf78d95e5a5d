package model

import "time"

// Purchase request statuses.  pending is the only live state; accepted
// and rejected are terminal for the individual row.  A buyer may file
// a fresh request for the same listing after a rejection.
const (
    RequestPending  = "pending"
    RequestAccepted = "accepted"
    RequestRejected = "rejected"
)

// PurchaseRequest mirrors the `buy_requests` table: a buyer's
// expressed intent to purchase one listing.  SellerID is denormalized
// from the listing at creation so that the seller's incoming view
// needs no join through listings.
//
// Fields:
//  ID        – primary key identifier.
//  ListingID – listing the request targets.
//  BuyerID   – user who filed the request.
//  SellerID  – owner of the listing (copied at creation).
//  Status    – pending, accepted or rejected.
//  CreatedAt – creation timestamp.
//  UpdatedAt – timestamp of the last status change.
type PurchaseRequest struct {
    ID        uint64    // buy_requests.id
    ListingID uint64    // buy_requests.listing_id
    BuyerID   uint64    // buy_requests.buyer_id
    SellerID  uint64    // buy_requests.seller_id
    Status    string    // buy_requests.status
    CreatedAt time.Time // buy_requests.created_at
    UpdatedAt time.Time // buy_requests.updated_at
}
