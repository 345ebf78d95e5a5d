package market

import (
    "strings"

    "github.com/iliyamo/gadget-market/internal/model"
)

// MaxListingPhotos bounds the photo references accepted per listing.
const MaxListingPhotos = 5

// NewListing carries the seller-supplied fields of a listing before
// validation and pricing.  SellerPrice is the payout the seller asked
// for; the public price is derived from it by ComputeListingPrice.
type NewListing struct {
    Title        string   `json:"title"`
    Category     string   `json:"category"`
    Brand        string   `json:"brand"`
    Model        string   `json:"model"`
    Condition    string   `json:"condition"`
    Description  string   `json:"description"`
    WorkingParts string   `json:"working_parts"`
    Location     string   `json:"location"`
    SellerPrice  float64  `json:"price"`
    Photos       []string `json:"photos"`
}

// validConditions is the closed set of accepted item conditions.
var validConditions = map[string]bool{
    model.ConditionBroken:   true,
    model.ConditionForParts: true,
    model.ConditionUsed:     true,
    model.ConditionNew:      true,
}

// ValidateNewListing checks the required fields of a listing before
// it is priced and stored.  Title, category, description, condition
// and location must be present, the condition must belong to the
// accepted set, the seller price must be positive and at most five
// photos may be attached.  All failures are ErrValidation.
func ValidateNewListing(in NewListing) error {
    if strings.TrimSpace(in.Title) == "" {
        return Errorf(ErrValidation, "title is required")
    }
    if strings.TrimSpace(in.Category) == "" {
        return Errorf(ErrValidation, "category is required")
    }
    if strings.TrimSpace(in.Description) == "" {
        return Errorf(ErrValidation, "description is required")
    }
    if strings.TrimSpace(in.Location) == "" {
        return Errorf(ErrValidation, "location is required")
    }
    if !validConditions[in.Condition] {
        return Errorf(ErrValidation, "condition must be one of broken, for_parts, used, new")
    }
    if len(in.Photos) > MaxListingPhotos {
        return Errorf(ErrValidation, "at most %d photos allowed", MaxListingPhotos)
    }
    if _, err := ComputeListingPrice(in.SellerPrice); err != nil {
        return err
    }
    return nil
}

// CanMarkSold gates the active→sold transition.  Only order
// finalization calls it; a listing already sold (or gone) never goes
// back on the market.
func CanMarkSold(status string) error {
    if status != model.ListingActive {
        return Errorf(ErrInvalidState, "listing is %s, not active", status)
    }
    return nil
}

// Sort keys accepted by the browse operation.
const (
    SortNewest    = "newest"
    SortPriceLow  = "price_low"
    SortPriceHigh = "price_high"
)

// NormalizeSort maps an arbitrary sort parameter onto one of the
// supported keys, defaulting to newest.
func NormalizeSort(sort string) string {
    switch sort {
    case SortPriceLow, SortPriceHigh:
        return sort
    default:
        return SortNewest
    }
}
