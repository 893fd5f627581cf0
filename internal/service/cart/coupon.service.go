package cart

import (
	"time"

	"storefront-checkout/internal/common/enum"
)

// Coupon is one redeemable code. PercentOff applies to the pre-tax
// subtotal.
type Coupon struct {
	Code       string
	PercentOff int
	ExpiresAt  time.Time
	MaxUses    int
	Uses       int
}

// The coupon table is static configuration; redemption counts are kept
// in-process because a coupon's use is only consumed on payment success.
var coupons = map[string]*Coupon{
	"WELCOME10":  {Code: "WELCOME10", PercentOff: 10, ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), MaxUses: 0},
	"LAUNCH25":   {Code: "LAUNCH25", PercentOff: 25, ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), MaxUses: 1000},
	"EXPIRED20":  {Code: "EXPIRED20", PercentOff: 20, ExpiresAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	"SINGLEUSE5": {Code: "SINGLEUSE5", PercentOff: 5, ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), MaxUses: 1, Uses: 1},
}

// LookupCoupon classifies a coupon code. A nil error code means the
// coupon is applicable.
func LookupCoupon(code string) (*Coupon, enum.CouponErrorEnum) {
	coupon, ok := coupons[code]
	if !ok {
		return nil, enum.COUPON_NOT_FOUND
	}
	if time.Now().After(coupon.ExpiresAt) {
		return nil, enum.COUPON_EXPIRED
	}
	if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
		return nil, enum.COUPON_ALREADY_USED
	}
	if coupon.PercentOff <= 0 || coupon.PercentOff > 100 {
		return nil, enum.COUPON_NO_LONGER_VALID
	}
	return coupon, ""
}
