package contact

import (
	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	"storefront-checkout/internal/service/cart"

	"github.com/samber/lo"
)

// Classify decides which category of contact information the cart
// requires. Pure function over the cart snapshot; callers recompute it
// on every cart change rather than caching the result, because adding
// or removing a domain or workspace item changes the required fields
// mid-session.
//
// Rules are ordered, first match wins. A domain purchase outranks a new
// workspace account, which outranks the zero-cost collapse to none.
func Classify(rc *models.ResponseCart) enum.ContactDetailsTypeEnum {
	pureRenewal := cart.PureRenewal(rc)

	hasDomain := lo.SomeBy(rc.Items, func(i models.CartItem) bool {
		return i.IsDomainRegistration || i.IsDomainTransfer
	})
	if hasDomain && !pureRenewal {
		return enum.CONTACT_DOMAIN
	}

	hasNewGSuite := lo.SomeBy(rc.Items, func(i models.CartItem) bool {
		return i.IsGSuite && !i.IsRenewal() && !i.Extra.IsExtraLicence
	})
	if hasNewGSuite && !pureRenewal {
		return enum.CONTACT_GSUITE
	}

	hasAkismet := lo.SomeBy(rc.Items, func(i models.CartItem) bool {
		return i.IsAkismetProduct
	})
	if rc.TotalCostInteger == 0 && !hasAkismet && !cart.CreditsCoverTotal(rc) {
		return enum.CONTACT_NONE
	}

	return enum.CONTACT_TAX
}
