package promo

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// sets decimal.MarshalJSONWithoutQuotes for the wire format
	_ "github.com/tourin/storefront/internal/api"
)

func TestPayloadFromForm(t *testing.T) {
	t.Run("given numeric strings should coerce them to decimals", func(t *testing.T) {
		payload, err := PayloadFromForm(FormValues{
			Title:              "Weekend Getaway",
			PromoCode:          "WKND25",
			PromoDiscountPrice: "25000",
			MinimumClaimPrice:  "100000.50",
		})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(25000).Equal(payload.PromoDiscountPrice))
		assert.True(t, decimal.RequireFromString("100000.50").Equal(payload.MinimumClaimPrice))
	})

	t.Run("given empty amounts should coerce to zero", func(t *testing.T) {
		payload, err := PayloadFromForm(FormValues{Title: "t", PromoCode: "c"})

		require.NoError(t, err)
		assert.True(t, payload.PromoDiscountPrice.IsZero())
		assert.True(t, payload.MinimumClaimPrice.IsZero())
	})

	tests := []struct {
		name   string
		values FormValues
		want   string
	}{
		{
			name:   "given non numeric discount should fail naming the field",
			values: FormValues{PromoDiscountPrice: "abc"},
			want:   "invalid promo_discount_price",
		},
		{
			name:   "given non numeric minimum should fail naming the field",
			values: FormValues{MinimumClaimPrice: "10,000"},
			want:   "invalid minimum_claim_price",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PayloadFromForm(tt.values)

			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPayloadMarshalsAmountsAsNumbers(t *testing.T) {
	payload, err := PayloadFromForm(FormValues{
		Title:              "Weekend Getaway",
		PromoCode:          "WKND25",
		PromoDiscountPrice: "25000",
		MinimumClaimPrice:  "100000",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"promo_discount_price":25000`)
	assert.Contains(t, string(raw), `"minimum_claim_price":100000`)
}
