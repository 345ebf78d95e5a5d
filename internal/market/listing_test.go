package market

import (
	"testing"

	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/stretchr/testify/require"
)

func validListing() NewListing {
	return NewListing{
		Title:       "Thinkpad X230 (no screen)",
		Category:    "laptop",
		Brand:       "Lenovo",
		Model:       "X230",
		Condition:   model.ConditionForParts,
		Description: "Board works, screen cracked beyond repair.",
		Location:    "Pune",
		SellerPrice: 1500,
		Photos:      []string{"a.jpg", "b.jpg"},
	}
}

// Tests ValidateNewListing
func TestValidateNewListing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NewListing)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(in *NewListing) {},
		},
		{
			name:   "no_photos_is_fine",
			mutate: func(in *NewListing) { in.Photos = nil },
		},
		{
			name:   "working_parts_optional",
			mutate: func(in *NewListing) { in.WorkingParts = "" },
		},
		{
			name:    "missing_title",
			mutate:  func(in *NewListing) { in.Title = "   " },
			wantErr: ErrValidation,
		},
		{
			name:    "missing_category",
			mutate:  func(in *NewListing) { in.Category = "" },
			wantErr: ErrValidation,
		},
		{
			name:    "missing_description",
			mutate:  func(in *NewListing) { in.Description = "" },
			wantErr: ErrValidation,
		},
		{
			name:    "missing_location",
			mutate:  func(in *NewListing) { in.Location = "" },
			wantErr: ErrValidation,
		},
		{
			name:    "unknown_condition",
			mutate:  func(in *NewListing) { in.Condition = "mint" },
			wantErr: ErrValidation,
		},
		{
			name:    "empty_condition",
			mutate:  func(in *NewListing) { in.Condition = "" },
			wantErr: ErrValidation,
		},
		{
			name: "too_many_photos",
			mutate: func(in *NewListing) {
				in.Photos = []string{"1", "2", "3", "4", "5", "6"}
			},
			wantErr: ErrValidation,
		},
		{
			name:   "exactly_five_photos",
			mutate: func(in *NewListing) { in.Photos = []string{"1", "2", "3", "4", "5"} },
		},
		{
			name:    "zero_seller_price",
			mutate:  func(in *NewListing) { in.SellerPrice = 0 },
			wantErr: ErrValidation,
		},
		{
			name:    "negative_seller_price",
			mutate:  func(in *NewListing) { in.SellerPrice = -10 },
			wantErr: ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validListing()
			tc.mutate(&in)
			err := ValidateNewListing(in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// Tests CanMarkSold: only active listings close; sold never reverts
// and never closes twice.
func TestCanMarkSold(t *testing.T) {
	require.NoError(t, CanMarkSold(model.ListingActive))
	require.ErrorIs(t, CanMarkSold(model.ListingSold), ErrInvalidState)
	require.ErrorIs(t, CanMarkSold("removed"), ErrInvalidState)
	require.ErrorIs(t, CanMarkSold(""), ErrInvalidState)
}

func TestNormalizeSort(t *testing.T) {
	require.Equal(t, SortNewest, NormalizeSort(""))
	require.Equal(t, SortNewest, NormalizeSort("bogus"))
	require.Equal(t, SortNewest, NormalizeSort(SortNewest))
	require.Equal(t, SortPriceLow, NormalizeSort(SortPriceLow))
	require.Equal(t, SortPriceHigh, NormalizeSort(SortPriceHigh))
}
