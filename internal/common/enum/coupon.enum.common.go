package enum

/*----------- CouponErrorEnum -----------*/

// CouponErrorEnum classifies coupon application failures. Coupon errors are
// surfaced as transient notices and are excluded from the generic error path.
type CouponErrorEnum string

const (
	COUPON_NOT_FOUND       CouponErrorEnum = "coupon-not-found"
	COUPON_ALREADY_USED    CouponErrorEnum = "coupon-already-used"
	COUPON_NO_LONGER_VALID CouponErrorEnum = "coupon-no-longer-valid"
	COUPON_EXPIRED         CouponErrorEnum = "coupon-expired"
	COUPON_UNKNOWN_ERROR   CouponErrorEnum = "coupon-unknown-error"
)

func (e CouponErrorEnum) ToString() string {
	return string(e)
}

func (e CouponErrorEnum) IsValid() bool {
	switch e {
	case COUPON_NOT_FOUND, COUPON_ALREADY_USED, COUPON_NO_LONGER_VALID, COUPON_EXPIRED, COUPON_UNKNOWN_ERROR:
		return true
	}
	return false
}

// Notice returns the user-facing notice text for the error code.
func (e CouponErrorEnum) Notice() string {
	switch e {
	case COUPON_NOT_FOUND:
		return "That coupon does not exist"
	case COUPON_ALREADY_USED:
		return "That coupon has already been used"
	case COUPON_NO_LONGER_VALID:
		return "That coupon is no longer valid"
	case COUPON_EXPIRED:
		return "That coupon has expired"
	}
	return "There was a problem applying that coupon"
}
