package market

import (
    "strings"

    "github.com/iliyamo/gadget-market/internal/model"
)

// ShippingDetails carries the checkout form fields recorded on an
// order.  The payment method is recorded verbatim; nothing is
// settled.
type ShippingDetails struct {
    Name          string `json:"shipping_name"`
    Email         string `json:"shipping_email"`
    Phone         string `json:"shipping_phone"`
    Address       string `json:"shipping_address"`
    Pincode       string `json:"shipping_pincode"`
    PaymentMethod string `json:"payment_method"`
}

// validPayments is the closed set of accepted payment methods.
var validPayments = map[string]bool{
    model.PaymentUPI:        true,
    model.PaymentCard:       true,
    model.PaymentNetBanking: true,
    model.PaymentBitcoin:    true,
    model.PaymentCOD:        true,
}

// ValidateShipping checks that every shipping field is present and
// the payment method belongs to the accepted set.  All failures are
// ErrValidation.
func ValidateShipping(s ShippingDetails) error {
    if strings.TrimSpace(s.Name) == "" {
        return Errorf(ErrValidation, "shipping_name is required")
    }
    if strings.TrimSpace(s.Email) == "" {
        return Errorf(ErrValidation, "shipping_email is required")
    }
    if strings.TrimSpace(s.Phone) == "" {
        return Errorf(ErrValidation, "shipping_phone is required")
    }
    if strings.TrimSpace(s.Address) == "" {
        return Errorf(ErrValidation, "shipping_address is required")
    }
    if strings.TrimSpace(s.Pincode) == "" {
        return Errorf(ErrValidation, "shipping_pincode is required")
    }
    if !validPayments[s.PaymentMethod] {
        return Errorf(ErrValidation, "payment_method must be one of UPI, Card, NetBanking, Bitcoin, COD")
    }
    return nil
}

// CheckoutGate applies the checkout preconditions in their fixed
// order; the first failure wins.  The caller resolves existence (a
// missing request is ErrNotFound before this gate runs) and passes in
// whether an order already exists for the request.  On success the
// caller creates the order, marks the listing sold and rejects every
// other live request on it, all inside one transaction.
func CheckoutGate(r *model.PurchaseRequest, buyerID uint64, alreadyOrdered bool, s ShippingDetails) error {
    if r.BuyerID != buyerID {
        return Errorf(ErrForbidden, "not the buyer of this request")
    }
    if r.Status != model.RequestAccepted {
        return Errorf(ErrInvalidState, "request not accepted")
    }
    if alreadyOrdered {
        return Errorf(ErrConflict, "already ordered")
    }
    return ValidateShipping(s)
}
