package checkout

import (
	"regexp"
	"strconv"
	"strings"

	"storefront-checkout/internal/common/models"
	"storefront-checkout/internal/service/cart"

	"github.com/samber/lo"
)

// receiptIDPlaceholder stands in for the receipt id when no identifier
// has been resolved yet.
const receiptIDPlaceholder = ":receiptId"

var postEditPattern = regexp.MustCompile(`^/wp-admin/post\.php\?post=(\d+)\b`)

// ResolveParams are the inputs of the thank-you URL resolution.
// DestinationKey addresses the signup-destination record for this
// buyer's flow.
type ResolveParams struct {
	Cart               *models.ResponseCart
	SiteSlug           string
	RedirectTo         string
	ReceiptID          string
	OrderID            string
	PurchaseID         string
	Feature            string
	IsJetpackNotAtomic bool
	IsAtomicSite       bool
	DestinationKey     string
	HideNudge          bool
	InNudgeBucket      bool
}

// ResolveThankYouURL computes the post-purchase destination. The rule
// order is load-bearing: renewals short-circuit everything after the
// ecommerce persist, and only the final rule consults nudge
// eligibility.
func ResolveThankYouURL(store SignupDestinationStore, p ResolveParams) string {
	// An internal admin post-edit redirect wins outright.
	if p.RedirectTo != "" && !isExternalURL(p.RedirectTo) {
		if m := postEditPattern.FindStringSubmatch(p.RedirectTo); m != nil {
			return "/wp-admin/post.php?post=" + m[1] + "&action=edit&plan_upgraded=1"
		}
	}

	id := pendingOrReceiptID(p)
	fallback := fallbackDestination(p, id)

	// Ecommerce purchases must always land on their own thank-you page,
	// even when an earlier signup flow recorded another destination.
	if p.Cart != nil && hasEcommercePlan(p.Cart) && p.DestinationKey != "" {
		store.Persist(p.DestinationKey, fallback)
	}

	if p.Cart != nil {
		if renewal, ok := firstRenewal(p.Cart); ok {
			return managePurchaseURL(renewal)
		}
	}

	signupDest := ""
	if p.DestinationKey != "" {
		signupDest = store.Retrieve(p.DestinationKey, p.IsAtomicSite)
	}

	if (p.Cart == nil || len(p.Cart.Items) == 0) && id == receiptIDPlaceholder {
		if signupDest != "" {
			return signupDest
		}
		return fallback
	}

	// A domain-only signup flow created the site during checkout; the
	// receipt id rides along so the destination page can show it.
	if p.Cart != nil && p.Cart.CreateNewBlog {
		base := fallback
		if signupDest != "" {
			base = signupDest
		}
		return strings.TrimSuffix(base, "/") + "/" + id
	}

	if nudge := conciergeNudgeURL(p, id); nudge != "" {
		return nudge
	}

	dest := fallback
	if signupDest != "" {
		dest = signupDest
	}
	return appendDisplayMode(dest, p.Cart)
}

func pendingOrReceiptID(p ResolveParams) string {
	switch {
	case p.ReceiptID != "":
		return p.ReceiptID
	case p.OrderID != "":
		return "pending/" + p.OrderID
	case p.PurchaseID != "":
		return p.PurchaseID
	default:
		return receiptIDPlaceholder
	}
}

// fallbackDestination is the rule-free landing page: Jetpack sites that
// are not atomic always return to their plan page rather than a generic
// receipt page.
func fallbackDestination(p ResolveParams, id string) string {
	if p.IsJetpackNotAtomic {
		url := "/plans/my-plan/" + p.SiteSlug + "?thank-you=true"
		if slug, ok := jetpackCustomThankYouSlug(p.Cart); ok {
			return url + "&product=" + slug
		}
		return url + "&install=all"
	}
	if p.Feature != "" && p.SiteSlug != "" {
		return "/checkout/thank-you/features/" + p.Feature + "/" + p.SiteSlug + "/" + id
	}
	if p.SiteSlug == "" {
		return "/checkout/thank-you/no-site"
	}
	return "/checkout/thank-you/" + p.SiteSlug + "/" + id
}

func jetpackCustomThankYouSlug(rc *models.ResponseCart) (string, bool) {
	if rc == nil {
		return "", false
	}
	item, ok := lo.Find(rc.Items, func(i models.CartItem) bool {
		return cart.IsJetpackCustomThankYou(i.ProductSlug)
	})
	if !ok {
		return "", false
	}
	return item.ProductSlug, true
}

func hasEcommercePlan(rc *models.ResponseCart) bool {
	return lo.SomeBy(rc.Items, func(i models.CartItem) bool {
		return i.IsEcommercePlan
	})
}

func firstRenewal(rc *models.ResponseCart) (models.CartItem, bool) {
	return lo.Find(rc.Items, func(i models.CartItem) bool {
		return i.IsRenewal()
	})
}

func managePurchaseURL(item models.CartItem) string {
	return "/me/purchases/" + item.Extra.PurchaseDomain + "/" + strconv.FormatInt(item.Extra.PurchaseID, 10)
}

// conciergeNudgeURL offers a quickstart session after qualifying plan
// purchases. The nudge is suppressed once the buyer has already seen
// one, and gated by the experiment bucket.
func conciergeNudgeURL(p ResolveParams, id string) string {
	if p.HideNudge || !p.InNudgeBucket || p.Cart == nil || p.SiteSlug == "" {
		return ""
	}
	hasPlan := lo.SomeBy(p.Cart.Items, func(i models.CartItem) bool {
		return i.IsPlan && !i.IsEcommercePlan
	})
	if !hasPlan || hasConciergeSession(p.Cart) {
		return ""
	}
	return "/checkout/offer-quickstart-session/" + id + "/" + p.SiteSlug
}

func hasConciergeSession(rc *models.ResponseCart) bool {
	return lo.SomeBy(rc.Items, func(i models.CartItem) bool {
		return i.ProductSlug == "concierge-session"
	})
}

// appendDisplayMode tags the destination with a display-mode query
// parameter derived from cart contents, so the landing page can adapt.
func appendDisplayMode(dest string, rc *models.ResponseCart) string {
	if rc == nil || !hasConciergeSession(rc) {
		return dest
	}
	sep := "?"
	if strings.Contains(dest, "?") {
		sep = "&"
	}
	return dest + sep + "d=concierge"
}

func isExternalURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "//")
}
