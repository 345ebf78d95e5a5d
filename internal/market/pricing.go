package market

import "math"

// Commission parameters applied when a listing is created.  The
// public price is the seller's requested payout plus a 10% commission
// and a flat handling fee, rounded to the nearest whole currency
// unit.  A listing keeps the price computed at creation even if these
// parameters change later; stored prices are snapshots.
const (
    commissionRate = 0.10
    handlingFee    = 20.0
)

// Quote is the result of the pricing policy: the public listing price
// and the platform's profit on a sale at that price.
type Quote struct {
    Price  float64 // amount the buyer pays, whole currency units
    Profit float64 // Price - seller payout, never negative
}

// ComputeListingPrice derives the public price and platform profit
// from the payout the seller asked for.  It fails with ErrValidation
// when sellerPrice is zero, negative or not finite.  The function is
// deterministic and side-effect free; it runs exactly once per
// listing, at creation.
func ComputeListingPrice(sellerPrice float64) (Quote, error) {
    if math.IsNaN(sellerPrice) || math.IsInf(sellerPrice, 0) {
        return Quote{}, Errorf(ErrValidation, "seller price must be a finite number")
    }
    if sellerPrice <= 0 {
        return Quote{}, Errorf(ErrValidation, "seller price must be positive")
    }
    price := math.Round(sellerPrice*(1+commissionRate) + handlingFee)
    return Quote{Price: price, Profit: price - sellerPrice}, nil
}
