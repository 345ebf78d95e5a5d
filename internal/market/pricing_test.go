package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tests ComputeListingPrice
func TestComputeListingPrice(t *testing.T) {
	tests := []struct {
		name        string
		sellerPrice float64
		wantPrice   float64
		wantProfit  float64
		wantErr     error
	}{
		{
			name:        "reference_scenario_1000",
			sellerPrice: 1000,
			wantPrice:   1120,
			wantProfit:  120,
		},
		{
			name:        "small_price",
			sellerPrice: 1,
			wantPrice:   21, // 1.1 + 20 = 21.1 -> 21
			wantProfit:  20,
		},
		{
			name:        "rounds_to_nearest_whole_unit",
			sellerPrice: 99.99,
			wantPrice:   130, // 109.989 + 20 = 129.989 -> 130
			wantProfit:  130 - 99.99,
		},
		{
			name:        "fractional_payout",
			sellerPrice: 0.5,
			wantPrice:   21, // 0.55 + 20 = 20.55 -> 21
			wantProfit:  20.5,
		},
		{
			name:        "zero_price",
			sellerPrice: 0,
			wantErr:     ErrValidation,
		},
		{
			name:        "negative_price",
			sellerPrice: -50,
			wantErr:     ErrValidation,
		},
		{
			name:        "nan_price",
			sellerPrice: math.NaN(),
			wantErr:     ErrValidation,
		},
		{
			name:        "infinite_price",
			sellerPrice: math.Inf(1),
			wantErr:     ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ComputeListingPrice(tc.sellerPrice)
			if tc.wantErr != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantPrice, q.Price)
			require.InDelta(t, tc.wantProfit, q.Profit, 1e-9)
		})
	}
}

// The platform margin must never be negative: for every positive
// payout the public price stays at or above it, and profit is exactly
// the difference.
func TestComputeListingPrice_MarginNonNegative(t *testing.T) {
	for _, sp := range []float64{0.01, 0.49, 1, 7.77, 42, 199.95, 1000, 99999.5, 1e9} {
		q, err := ComputeListingPrice(sp)
		require.NoError(t, err)
		require.GreaterOrEqual(t, q.Price, sp, "seller price %v", sp)
		require.InDelta(t, q.Price-sp, q.Profit, 1e-9, "seller price %v", sp)
		require.Equal(t, math.Round(q.Price), q.Price, "price must be a whole unit for %v", sp)
	}
}
