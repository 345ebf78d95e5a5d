package model

import "time"

// Payment methods recorded at checkout.  Payment is recorded, not
// settled; no processor integration exists.
const (
    PaymentUPI        = "UPI"
    PaymentCard       = "Card"
    PaymentNetBanking = "NetBanking"
    PaymentBitcoin    = "Bitcoin"
    PaymentCOD        = "COD"
)

// Order mirrors the `orders` table: the finalized, immutable record
// of a completed purchase.  At most one order exists per request
// (unique index on request_id) and, transitively, per listing.
// ListingID, BuyerID and SellerID are denormalized from the request
// at creation so buyer and seller projections need no joins.  Orders
// are never updated; they are only removed by administrative cascade
// deletes.
//
// Fields:
//  ID              – primary key identifier.
//  RequestID       – accepted request this order finalizes (unique).
//  ListingID       – listing purchased.
//  BuyerID         – purchasing user.
//  SellerID        – selling user.
//  ShippingName    – recipient name.
//  ShippingEmail   – recipient email.
//  ShippingPhone   – recipient phone.
//  ShippingAddress – street address.
//  ShippingPincode – postal code.
//  PaymentMethod   – one of UPI, Card, NetBanking, Bitcoin, COD.
//  CreatedAt       – creation timestamp.
type Order struct {
    ID              uint64    // orders.id
    RequestID       uint64    // orders.request_id
    ListingID       uint64    // orders.listing_id
    BuyerID         uint64    // orders.buyer_id
    SellerID        uint64    // orders.seller_id
    ShippingName    string    // orders.shipping_name
    ShippingEmail   string    // orders.shipping_email
    ShippingPhone   string    // orders.shipping_phone
    ShippingAddress string    // orders.shipping_address
    ShippingPincode string    // orders.shipping_pincode
    PaymentMethod   string    // orders.payment_method
    CreatedAt       time.Time // orders.created_at
}
