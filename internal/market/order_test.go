package market

import (
	"testing"

	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingDetails {
	return ShippingDetails{
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Address:       "14 MG Road",
		Pincode:       "411001",
		PaymentMethod: model.PaymentUPI,
	}
}

func acceptedRequest() *model.PurchaseRequest {
	return &model.PurchaseRequest{ID: 20, ListingID: 10, BuyerID: buyerID, SellerID: sellerID, Status: model.RequestAccepted}
}

// Tests ValidateShipping
func TestValidateShipping(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ShippingDetails)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *ShippingDetails) {}},
		{name: "missing_name", mutate: func(s *ShippingDetails) { s.Name = "" }, wantErr: true},
		{name: "missing_email", mutate: func(s *ShippingDetails) { s.Email = " " }, wantErr: true},
		{name: "missing_phone", mutate: func(s *ShippingDetails) { s.Phone = "" }, wantErr: true},
		{name: "missing_address", mutate: func(s *ShippingDetails) { s.Address = "" }, wantErr: true},
		{name: "missing_pincode", mutate: func(s *ShippingDetails) { s.Pincode = "" }, wantErr: true},
		{name: "unknown_payment_method", mutate: func(s *ShippingDetails) { s.PaymentMethod = "Cheque" }, wantErr: true},
		{name: "lowercase_payment_rejected", mutate: func(s *ShippingDetails) { s.PaymentMethod = "upi" }, wantErr: true},
		{name: "cod_accepted", mutate: func(s *ShippingDetails) { s.PaymentMethod = model.PaymentCOD }},
		{name: "bitcoin_accepted", mutate: func(s *ShippingDetails) { s.PaymentMethod = model.PaymentBitcoin }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validShipping()
			tc.mutate(&s)
			err := ValidateShipping(s)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

// Tests CheckoutGate precondition ordering: ownership, then request
// state, then duplicate order, then shipping validation.  The first
// failure wins even when several conditions are violated at once.
func TestCheckoutGate(t *testing.T) {
	tests := []struct {
		name           string
		request        *model.PurchaseRequest
		buyer          uint64
		alreadyOrdered bool
		shipping       ShippingDetails
		wantErr        error
	}{
		{
			name:     "valid",
			request:  acceptedRequest(),
			buyer:    buyerID,
			shipping: validShipping(),
		},
		{
			name:     "wrong_buyer",
			request:  acceptedRequest(),
			buyer:    otherID,
			shipping: validShipping(),
			wantErr:  ErrForbidden,
		},
		{
			name:     "request_still_pending",
			request:  pendingRequest(),
			buyer:    buyerID,
			shipping: validShipping(),
			wantErr:  ErrInvalidState,
		},
		{
			name: "request_rejected",
			request: &model.PurchaseRequest{
				ID: 20, ListingID: 10, BuyerID: buyerID, SellerID: sellerID,
				Status: model.RequestRejected,
			},
			buyer:    buyerID,
			shipping: validShipping(),
			wantErr:  ErrInvalidState,
		},
		{
			name:           "double_checkout",
			request:        acceptedRequest(),
			buyer:          buyerID,
			alreadyOrdered: true,
			shipping:       validShipping(),
			wantErr:        ErrConflict,
		},
		{
			name:     "bad_shipping_checked_last",
			request:  acceptedRequest(),
			buyer:    buyerID,
			shipping: ShippingDetails{},
			wantErr:  ErrValidation,
		},
		{
			// wrong buyer AND bad shipping: ownership failure wins
			name:     "ordering_forbidden_before_validation",
			request:  acceptedRequest(),
			buyer:    otherID,
			shipping: ShippingDetails{},
			wantErr:  ErrForbidden,
		},
		{
			// pending request AND existing order: state failure wins
			name:           "ordering_state_before_conflict",
			request:        pendingRequest(),
			buyer:          buyerID,
			alreadyOrdered: true,
			shipping:       validShipping(),
			wantErr:        ErrInvalidState,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckoutGate(tc.request, tc.buyer, tc.alreadyOrdered, tc.shipping)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
