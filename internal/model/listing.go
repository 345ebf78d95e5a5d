package model

import "time"

// Listing statuses.  A listing is created active, becomes sold exactly
// once when an accepted purchase request is finalized into an order,
// and disappears via administrative deletion.  It never reverts.
const (
    ListingActive = "active"
    ListingSold   = "sold"
)

// Item conditions accepted at listing creation.
const (
    ConditionBroken   = "broken"
    ConditionForParts = "for_parts"
    ConditionUsed     = "used"
    ConditionNew      = "new"
)

// Listing mirrors the `listings` table: a seller's posted item for
// sale.  SellerPrice is the amount the seller expects to receive;
// Price is the public display price derived once at creation by the
// pricing policy and never recomputed.  The platform margin
// (Price - SellerPrice) is non-negative by construction.
//
// Fields:
//  ID           – primary key identifier.
//  SellerID     – owner of the listing; immutable after creation.
//  Title        – short item title.
//  Category     – item category (e.g. "laptop", "phone").
//  Brand        – manufacturer name.
//  Model        – model designation.
//  Condition    – one of broken, for_parts, used, new.
//  Description  – long-form description.
//  WorkingParts – optional free text listing salvageable parts.
//  Location     – where the item is located.
//  SellerPrice  – seller's requested payout.
//  Price        – public price, whole currency units.
//  Photos       – ordered image references, at most five.
//  Status       – active or sold.
//  CreatedAt    – creation timestamp.
type Listing struct {
    ID           uint64    // listings.id
    SellerID     uint64    // listings.seller_id
    Title        string    // listings.title
    Category     string    // listings.category
    Brand        string    // listings.brand
    Model        string    // listings.model
    Condition    string    // listings.cond
    Description  string    // listings.description
    WorkingParts string    // listings.working_parts
    Location     string    // listings.location
    SellerPrice  float64   // listings.seller_price
    Price        float64   // listings.price
    Photos       []string  // listings.photos (JSON array text)
    Status       string    // listings.status
    CreatedAt    time.Time // listings.created_at
}
