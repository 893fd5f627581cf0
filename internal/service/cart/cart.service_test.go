package cart

import (
	"encoding/json"
	"testing"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartRecord(t *testing.T, loc models.TaxLocation) *models.Cart {
	t.Helper()
	locJSON, err := json.Marshal(loc)
	require.NoError(t, err)
	return &models.Cart{TaxLocation: models.JSONB(locJSON)}
}

func TestRecomputeTotalsSubtotalOnly(t *testing.T) {
	record := &models.Cart{}
	recomputeTotals(record, []models.CartItem{
		{Amount: 4800},
		{Amount: 1800},
	})

	assert.Equal(t, int64(6600), record.SubtotalInteger)
	assert.Equal(t, int64(0), record.DiscountInteger)
	assert.Equal(t, int64(0), record.TaxInteger)
	assert.Equal(t, int64(6600), record.TotalCostInteger)
}

func TestRecomputeTotalsAppliesCouponBeforeTax(t *testing.T) {
	record := cartRecord(t, models.TaxLocation{CountryCode: "GB"})
	record.CouponCode = "WELCOME10"

	recomputeTotals(record, []models.CartItem{{Amount: 10000}})

	assert.Equal(t, int64(10000), record.SubtotalInteger)
	assert.Equal(t, int64(1000), record.DiscountInteger)
	// 20% VAT on the discounted 9000
	assert.Equal(t, int64(1800), record.TaxInteger)
	assert.Equal(t, int64(10800), record.TotalCostInteger)
}

func TestRecomputeTotalsDropsStaleCoupon(t *testing.T) {
	record := &models.Cart{CouponCode: "EXPIRED20"}
	recomputeTotals(record, []models.CartItem{{Amount: 10000}})

	assert.Empty(t, record.CouponCode)
	assert.Equal(t, int64(0), record.DiscountInteger)
	assert.Equal(t, int64(10000), record.TotalCostInteger)
}

func TestRecomputeTotalsCreditsFloorAtZero(t *testing.T) {
	record := &models.Cart{CreditsInteger: 20000}
	recomputeTotals(record, []models.CartItem{{Amount: 4800}})

	assert.Equal(t, int64(0), record.TotalCostInteger)
}

func TestRecomputeTotalsUnknownCountryUntaxed(t *testing.T) {
	record := cartRecord(t, models.TaxLocation{CountryCode: "SG"})
	recomputeTotals(record, []models.CartItem{{Amount: 10000}})

	assert.Equal(t, int64(0), record.TaxInteger)
	assert.Equal(t, int64(10000), record.TotalCostInteger)
}

func TestRecomputeTotalsNorthernIrelandRate(t *testing.T) {
	record := cartRecord(t, models.TaxLocation{CountryCode: "XI"})
	recomputeTotals(record, []models.CartItem{{Amount: 10000}})

	assert.Equal(t, int64(2000), record.TaxInteger)
}

func TestLookupCoupon(t *testing.T) {
	tests := []struct {
		code    string
		wantErr enum.CouponErrorEnum
	}{
		{"WELCOME10", ""},
		{"LAUNCH25", ""},
		{"NOPE", enum.COUPON_NOT_FOUND},
		{"EXPIRED20", enum.COUPON_EXPIRED},
		{"SINGLEUSE5", enum.COUPON_ALREADY_USED},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			coupon, couponErr := LookupCoupon(tt.code)
			assert.Equal(t, tt.wantErr, couponErr)
			if tt.wantErr == "" {
				require.NotNil(t, coupon)
				assert.Positive(t, coupon.PercentOff)
			} else {
				assert.Nil(t, coupon)
			}
		})
	}
}

func TestPureRenewal(t *testing.T) {
	renewal := models.CartItem{Extra: models.CartItemExtra{PurchaseType: "renewal", PurchaseID: 1}}
	fresh := models.CartItem{Extra: models.CartItemExtra{PurchaseType: "new"}}

	assert.False(t, PureRenewal(&models.ResponseCart{}))
	assert.True(t, PureRenewal(&models.ResponseCart{Items: []models.CartItem{renewal}}))
	assert.False(t, PureRenewal(&models.ResponseCart{Items: []models.CartItem{renewal, fresh}}))
}

func TestCreditsCoverTotal(t *testing.T) {
	assert.False(t, CreditsCoverTotal(&models.ResponseCart{}))

	covered := &models.ResponseCart{
		SubtotalInteger: 4800,
		CreditsInteger:  5000,
	}
	assert.True(t, CreditsCoverTotal(covered))

	partial := &models.ResponseCart{
		SubtotalInteger: 4800,
		CreditsInteger:  4000,
	}
	assert.False(t, CreditsCoverTotal(partial))

	// tax counts toward the pre-credit cost
	withTax := &models.ResponseCart{
		SubtotalInteger: 4800,
		TaxInteger:      960,
		CreditsInteger:  4800,
	}
	assert.False(t, CreditsCoverTotal(withTax))
}

func TestDecodeItemsEmptyPayload(t *testing.T) {
	items, err := decodeItems(&models.Cart{})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = decodeItems(&models.Cart{Items: models.JSONB("[]")})
	require.NoError(t, err)
	assert.Empty(t, items)
}
