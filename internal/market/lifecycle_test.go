package market

import (
	"testing"

	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/stretchr/testify/require"
)

// Walks the whole happy path through the pure rules the way the
// handlers drive them: seller posts, two buyers request, seller
// accepts one, that buyer checks out, the listing closes and the
// losing buyer can no longer be accepted or finalized.
func TestFullLifecycle(t *testing.T) {
	// Seller posts an item asking for 1000.
	in := validListing()
	in.SellerPrice = 1000
	require.NoError(t, ValidateNewListing(in))
	q, err := ComputeListingPrice(in.SellerPrice)
	require.NoError(t, err)
	require.Equal(t, float64(1120), q.Price)
	require.Equal(t, float64(120), q.Profit)

	listing := &model.Listing{ID: 10, SellerID: sellerID, SellerPrice: in.SellerPrice, Price: q.Price, Status: model.ListingActive}

	// Buyer A and buyer B both request; the seller cannot.
	require.NoError(t, CanCreateRequest(listing, buyerID, false))
	require.NoError(t, CanCreateRequest(listing, otherID, false))
	require.ErrorIs(t, CanCreateRequest(listing, sellerID, false), ErrForbidden)
	// A second request from A while the first is pending is refused.
	require.ErrorIs(t, CanCreateRequest(listing, buyerID, true), ErrConflict)

	reqA := &model.PurchaseRequest{ID: 20, ListingID: 10, BuyerID: buyerID, SellerID: sellerID, Status: model.RequestPending}
	reqB := &model.PurchaseRequest{ID: 21, ListingID: 10, BuyerID: otherID, SellerID: sellerID, Status: model.RequestPending}

	// Seller accepts A. The listing stays active: acceptance is a
	// soft go-ahead, not a binding commit.
	require.NoError(t, CanAcceptRequest(listing, reqA, sellerID))
	reqA.Status = model.RequestAccepted
	require.Equal(t, model.ListingActive, listing.Status)

	// The seller may still accept B too while nobody has paid.
	require.NoError(t, CanAcceptRequest(listing, reqB, sellerID))

	// Buyer A finalizes checkout.
	require.NoError(t, CheckoutGate(reqA, buyerID, false, validShipping()))
	require.NoError(t, CanMarkSold(listing.Status))
	listing.Status = model.ListingSold
	// Finalization rejects every other live request on the listing.
	reqB.Status = model.RequestRejected

	// The listing can never close twice; a concurrent checkout that
	// lost the race observes this as its conflict signal.
	require.ErrorIs(t, CanMarkSold(listing.Status), ErrInvalidState)

	// Buyer A cannot order the same request again.
	require.ErrorIs(t, CheckoutGate(reqA, buyerID, true, validShipping()), ErrConflict)

	// Buyer B is locked out for good: accept and checkout both fail.
	require.ErrorIs(t, CanAcceptRequest(listing, reqB, sellerID), ErrInvalidState)
	require.ErrorIs(t, CheckoutGate(reqB, otherID, false, validShipping()), ErrInvalidState)

	// And no new requests form against a sold listing.
	require.ErrorIs(t, CanCreateRequest(listing, otherID, false), ErrInvalidState)
}
