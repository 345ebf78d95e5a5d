package market

import (
	"testing"

	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/stretchr/testify/require"
)

const (
	sellerID = uint64(1)
	buyerID  = uint64(2)
	otherID  = uint64(3)
)

func activeListing() *model.Listing {
	return &model.Listing{ID: 10, SellerID: sellerID, Status: model.ListingActive}
}

func pendingRequest() *model.PurchaseRequest {
	return &model.PurchaseRequest{ID: 20, ListingID: 10, BuyerID: buyerID, SellerID: sellerID, Status: model.RequestPending}
}

// Tests CanCreateRequest
func TestCanCreateRequest(t *testing.T) {
	tests := []struct {
		name       string
		listing    *model.Listing
		buyer      uint64
		hasPending bool
		wantErr    error
	}{
		{
			name:    "valid",
			listing: activeListing(),
			buyer:   buyerID,
		},
		{
			name:    "sold_listing",
			listing: &model.Listing{ID: 10, SellerID: sellerID, Status: model.ListingSold},
			buyer:   buyerID,
			wantErr: ErrInvalidState,
		},
		{
			name:    "own_listing",
			listing: activeListing(),
			buyer:   sellerID,
			wantErr: ErrForbidden,
		},
		{
			name:       "duplicate_pending",
			listing:    activeListing(),
			buyer:      buyerID,
			hasPending: true,
			wantErr:    ErrConflict,
		},
		{
			// a sold listing owned by the caller reports the state
			// problem, not the ownership one: status is checked first
			name:    "sold_own_listing_reports_state",
			listing: &model.Listing{ID: 10, SellerID: sellerID, Status: model.ListingSold},
			buyer:   sellerID,
			wantErr: ErrInvalidState,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanCreateRequest(tc.listing, tc.buyer, tc.hasPending)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// Tests CanAcceptRequest
func TestCanAcceptRequest(t *testing.T) {
	tests := []struct {
		name    string
		listing *model.Listing
		request *model.PurchaseRequest
		seller  uint64
		wantErr error
	}{
		{
			name:    "valid",
			listing: activeListing(),
			request: pendingRequest(),
			seller:  sellerID,
		},
		{
			name:    "not_the_seller",
			listing: activeListing(),
			request: pendingRequest(),
			seller:  otherID,
			wantErr: ErrForbidden,
		},
		{
			name:    "already_accepted",
			listing: activeListing(),
			request: &model.PurchaseRequest{ID: 20, ListingID: 10, BuyerID: buyerID, SellerID: sellerID, Status: model.RequestAccepted},
			seller:  sellerID,
			wantErr: ErrInvalidState,
		},
		{
			name:    "already_rejected",
			listing: activeListing(),
			request: &model.PurchaseRequest{ID: 20, ListingID: 10, BuyerID: buyerID, SellerID: sellerID, Status: model.RequestRejected},
			seller:  sellerID,
			wantErr: ErrInvalidState,
		},
		{
			name:    "listing_already_sold",
			listing: &model.Listing{ID: 10, SellerID: sellerID, Status: model.ListingSold},
			request: pendingRequest(),
			seller:  sellerID,
			wantErr: ErrInvalidState,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanAcceptRequest(tc.listing, tc.request, tc.seller)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// Tests CanRejectRequest: same authorization as accept, but rejecting
// does not care whether the listing is still active.
func TestCanRejectRequest(t *testing.T) {
	require.NoError(t, CanRejectRequest(pendingRequest(), sellerID))
	require.ErrorIs(t, CanRejectRequest(pendingRequest(), otherID), ErrForbidden)

	accepted := pendingRequest()
	accepted.Status = model.RequestAccepted
	require.ErrorIs(t, CanRejectRequest(accepted, sellerID), ErrInvalidState)

	rejected := pendingRequest()
	rejected.Status = model.RequestRejected
	require.ErrorIs(t, CanRejectRequest(rejected, sellerID), ErrInvalidState)
}
