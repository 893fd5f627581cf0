package checkout

import (
	"testing"

	"storefront-checkout/internal/common/models"

	"github.com/stretchr/testify/assert"
)

type fakeSignupStore struct {
	destinations map[string]string
	persisted    map[string]string
}

func newFakeSignupStore() *fakeSignupStore {
	return &fakeSignupStore{destinations: map[string]string{}, persisted: map[string]string{}}
}

func (f *fakeSignupStore) Retrieve(key string, isAtomicSite bool) string {
	return f.destinations[key]
}

func (f *fakeSignupStore) Persist(key string, destination string) {
	f.persisted[key] = destination
	f.destinations[key] = destination
}

func (f *fakeSignupStore) Clear(key string) {
	delete(f.destinations, key)
}

func renewalItem(domain string, purchaseID int64) models.CartItem {
	return models.CartItem{
		UUID:        "i1",
		ProductSlug: "personal-bundle",
		IsPlan:      true,
		Extra: models.CartItemExtra{
			PurchaseType:   "renewal",
			PurchaseID:     purchaseID,
			PurchaseDomain: domain,
		},
	}
}

func planItem(slug string) models.CartItem {
	return models.CartItem{
		UUID:        "i1",
		ProductSlug: slug,
		IsPlan:      true,
		Extra:       models.CartItemExtra{PurchaseType: "new"},
	}
}

func TestResolveRenewalGoesToManagePurchase(t *testing.T) {
	store := newFakeSignupStore()
	store.destinations["user-1"] = "https://example.blog/welcome"

	url := ResolveThankYouURL(store, ResolveParams{
		Cart:           &models.ResponseCart{Items: []models.CartItem{renewalItem("example.com", 42)}},
		SiteSlug:       "example.com",
		ReceiptID:      "777",
		DestinationKey: "user-1",
	})

	// renewals ignore the stored signup destination entirely
	assert.Equal(t, "/me/purchases/example.com/42", url)
}

func TestResolveEmptyCartWithoutIdentifiers(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:     &models.ResponseCart{},
		SiteSlug: "example.wordpress.com",
	})

	assert.Equal(t, "/checkout/thank-you/example.wordpress.com/:receiptId", url)
}

func TestResolveEmptyCartPrefersSignupDestination(t *testing.T) {
	store := newFakeSignupStore()
	store.destinations["user-1"] = "https://example.blog/welcome"

	url := ResolveThankYouURL(store, ResolveParams{
		Cart:           &models.ResponseCart{},
		SiteSlug:       "example.wordpress.com",
		DestinationKey: "user-1",
	})

	assert.Equal(t, "https://example.blog/welcome", url)
}

func TestResolveCreateNewBlogAppendsReceipt(t *testing.T) {
	store := newFakeSignupStore()
	store.destinations["user-1"] = "https://wp.com/new"

	url := ResolveThankYouURL(store, ResolveParams{
		Cart: &models.ResponseCart{
			Items:         []models.CartItem{planItem("personal-bundle")},
			CreateNewBlog: true,
		},
		SiteSlug:       "example.wordpress.com",
		ReceiptID:      "12345",
		DestinationKey: "user-1",
	})

	assert.Equal(t, "https://wp.com/new/12345", url)
}

func TestResolveCreateNewBlogWithoutStoreUsesFallback(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart: &models.ResponseCart{
			Items:         []models.CartItem{planItem("personal-bundle")},
			CreateNewBlog: true,
		},
		SiteSlug:  "example.wordpress.com",
		ReceiptID: "12345",
	})

	assert.Equal(t, "/checkout/thank-you/example.wordpress.com/12345/12345", url)
}

func TestResolveJetpackNotAtomic(t *testing.T) {
	tests := []struct {
		name string
		item models.CartItem
		want string
	}{
		{
			name: "custom thank-you product",
			item: models.CartItem{UUID: "i1", ProductSlug: "jetpack_backup_daily", IsJetpackProduct: true, Extra: models.CartItemExtra{PurchaseType: "new"}},
			want: "/plans/my-plan/example.com?thank-you=true&product=jetpack_backup_daily",
		},
		{
			name: "plain jetpack plan",
			item: models.CartItem{UUID: "i1", ProductSlug: "jetpack_personal", IsJetpackProduct: true, Extra: models.CartItemExtra{PurchaseType: "new"}},
			want: "/plans/my-plan/example.com?thank-you=true&install=all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
				Cart:               &models.ResponseCart{Items: []models.CartItem{tt.item}},
				SiteSlug:           "example.com",
				ReceiptID:          "99",
				IsJetpackNotAtomic: true,
			})
			assert.Equal(t, tt.want, url)
		})
	}
}

func TestResolveInternalPostEditRedirect(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:       &models.ResponseCart{Items: []models.CartItem{planItem("personal-bundle")}},
		SiteSlug:   "example.com",
		RedirectTo: "/wp-admin/post.php?post=123&action=edit&classic-editor=1",
		ReceiptID:  "99",
	})

	// the redirect is rebuilt from the post id alone
	assert.Equal(t, "/wp-admin/post.php?post=123&action=edit&plan_upgraded=1", url)
}

func TestResolveExternalRedirectIsIgnored(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:       &models.ResponseCart{Items: []models.CartItem{planItem("personal-bundle")}},
		SiteSlug:   "example.com",
		RedirectTo: "https://evil.example/wp-admin/post.php?post=123",
		ReceiptID:  "99",
	})

	assert.Equal(t, "/checkout/thank-you/example.com/99", url)
}

func TestResolveEcommercePersistsOwnDestination(t *testing.T) {
	store := newFakeSignupStore()
	store.destinations["user-1"] = "https://example.blog/welcome"

	item := planItem("ecommerce-bundle")
	item.IsEcommercePlan = true

	url := ResolveThankYouURL(store, ResolveParams{
		Cart:           &models.ResponseCart{Items: []models.CartItem{item}},
		SiteSlug:       "shop.example.com",
		ReceiptID:      "55",
		DestinationKey: "user-1",
	})

	want := "/checkout/thank-you/shop.example.com/55"
	assert.Equal(t, want, store.persisted["user-1"])
	// the overwritten destination is what the resolver then reads back
	assert.Equal(t, want, url)
}

func TestResolvePendingOrderUsesPendingPath(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:     &models.ResponseCart{Items: []models.CartItem{planItem("personal-bundle")}},
		SiteSlug: "example.com",
		OrderID:  "ord-9",
	})

	assert.Equal(t, "/checkout/thank-you/example.com/pending/ord-9", url)
}

func TestResolveFeatureDestination(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:      &models.ResponseCart{Items: []models.CartItem{planItem("personal-bundle")}},
		SiteSlug:  "example.com",
		Feature:   "custom-domain",
		ReceiptID: "31",
	})

	assert.Equal(t, "/checkout/thank-you/features/custom-domain/example.com/31", url)
}

func TestResolveNoSite(t *testing.T) {
	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:      &models.ResponseCart{Items: []models.CartItem{planItem("personal-bundle")}},
		ReceiptID: "31",
	})

	assert.Equal(t, "/checkout/thank-you/no-site", url)
}

func TestResolveConciergeNudge(t *testing.T) {
	base := func() ResolveParams {
		return ResolveParams{
			Cart:          &models.ResponseCart{Items: []models.CartItem{planItem("personal-bundle")}},
			SiteSlug:      "example.com",
			ReceiptID:     "88",
			InNudgeBucket: true,
		}
	}

	t.Run("eligible plan purchase gets the offer", func(t *testing.T) {
		url := ResolveThankYouURL(newFakeSignupStore(), base())
		assert.Equal(t, "/checkout/offer-quickstart-session/88/example.com", url)
	})

	t.Run("hide flag suppresses the offer", func(t *testing.T) {
		p := base()
		p.HideNudge = true
		url := ResolveThankYouURL(newFakeSignupStore(), p)
		assert.Equal(t, "/checkout/thank-you/example.com/88", url)
	})

	t.Run("outside the bucket no offer", func(t *testing.T) {
		p := base()
		p.InNudgeBucket = false
		url := ResolveThankYouURL(newFakeSignupStore(), p)
		assert.Equal(t, "/checkout/thank-you/example.com/88", url)
	})

	t.Run("ecommerce plans never get the offer", func(t *testing.T) {
		p := base()
		p.Cart.Items[0].IsEcommercePlan = true
		url := ResolveThankYouURL(newFakeSignupStore(), p)
		assert.Equal(t, "/checkout/thank-you/example.com/88", url)
	})

	t.Run("already bought a session no offer", func(t *testing.T) {
		p := base()
		session := models.CartItem{UUID: "i2", ProductSlug: "concierge-session", Extra: models.CartItemExtra{PurchaseType: "new"}}
		p.Cart.Items = append(p.Cart.Items, session)
		url := ResolveThankYouURL(newFakeSignupStore(), p)
		assert.Equal(t, "/checkout/thank-you/example.com/88?d=concierge", url)
	})
}

func TestResolveAppendsConciergeDisplayMode(t *testing.T) {
	cartWithSession := &models.ResponseCart{Items: []models.CartItem{
		planItem("personal-bundle"),
		{UUID: "i2", ProductSlug: "concierge-session", Extra: models.CartItemExtra{PurchaseType: "new"}},
	}}

	url := ResolveThankYouURL(newFakeSignupStore(), ResolveParams{
		Cart:      cartWithSession,
		SiteSlug:  "example.com",
		ReceiptID: "88",
	})
	assert.Equal(t, "/checkout/thank-you/example.com/88?d=concierge", url)

	store := newFakeSignupStore()
	store.destinations["user-1"] = "/start/setup?step=2"
	url = ResolveThankYouURL(store, ResolveParams{
		Cart:           cartWithSession,
		SiteSlug:       "example.com",
		ReceiptID:      "88",
		DestinationKey: "user-1",
	})
	assert.Equal(t, "/start/setup?step=2&d=concierge", url)
}
