package contact

import (
	"testing"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"

	"github.com/stretchr/testify/assert"
)

func newItem(opts func(*models.CartItem)) models.CartItem {
	item := models.CartItem{
		UUID:   "item-1",
		Amount: 1000,
		Extra:  models.CartItemExtra{PurchaseType: "new"},
	}
	if opts != nil {
		opts(&item)
	}
	return item
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		cart models.ResponseCart
		want enum.ContactDetailsTypeEnum
	}{
		{
			name: "domain registration wins regardless of other products",
			cart: models.ResponseCart{
				TotalCostInteger: 5000,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) { i.IsPlan = true }),
					newItem(func(i *models.CartItem) { i.IsDomainRegistration = true }),
					newItem(func(i *models.CartItem) { i.IsGSuite = true }),
				},
			},
			want: enum.CONTACT_DOMAIN,
		},
		{
			name: "domain transfer also requires registrant details",
			cart: models.ResponseCart{
				TotalCostInteger: 1800,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) { i.IsDomainTransfer = true }),
				},
			},
			want: enum.CONTACT_DOMAIN,
		},
		{
			name: "pure renewal of a domain does not re-collect registrant details",
			cart: models.ResponseCart{
				TotalCostInteger: 1800,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) {
						i.IsDomainRegistration = true
						i.Extra.PurchaseType = "renewal"
						i.Extra.PurchaseID = 42
					}),
				},
			},
			want: enum.CONTACT_TAX,
		},
		{
			name: "new workspace account requires gsuite details",
			cart: models.ResponseCart{
				TotalCostInteger: 7200,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) { i.IsGSuite = true }),
				},
			},
			want: enum.CONTACT_GSUITE,
		},
		{
			name: "extra licence for an existing workspace does not",
			cart: models.ResponseCart{
				TotalCostInteger: 7200,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) {
						i.IsGSuite = true
						i.Extra.IsExtraLicence = true
					}),
				},
			},
			want: enum.CONTACT_TAX,
		},
		{
			name: "free purchase collapses to none",
			cart: models.ResponseCart{
				TotalCostInteger: 0,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) { i.Amount = 0 }),
				},
			},
			want: enum.CONTACT_NONE,
		},
		{
			name: "free akismet purchase still collects tax details",
			cart: models.ResponseCart{
				TotalCostInteger: 0,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) {
						i.Amount = 0
						i.IsAkismetProduct = true
					}),
				},
			},
			want: enum.CONTACT_TAX,
		},
		{
			name: "credit-covered cart is not a free purchase",
			cart: models.ResponseCart{
				TotalCostInteger: 0,
				SubtotalInteger:  5000,
				CreditsInteger:   5000,
				Items: []models.CartItem{
					newItem(nil),
				},
			},
			want: enum.CONTACT_TAX,
		},
		{
			name: "paid plan without domain or workspace needs tax only",
			cart: models.ResponseCart{
				TotalCostInteger: 9600,
				SubtotalInteger:  9600,
				Items: []models.CartItem{
					newItem(func(i *models.CartItem) { i.IsPlan = true }),
				},
			},
			want: enum.CONTACT_TAX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.cart))
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	cart := models.ResponseCart{
		TotalCostInteger: 5000,
		Items: []models.CartItem{
			newItem(func(i *models.CartItem) { i.IsDomainRegistration = true }),
		},
	}

	first := Classify(&cart)
	second := Classify(&cart)
	assert.Equal(t, first, second)
	assert.Equal(t, enum.CONTACT_DOMAIN, first)
}
