package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeResolvesCatalogProduct(t *testing.T) {
	item, err := Normalize(&PurchaseRequest{ProductSlug: "personal-bundle"})
	require.NoError(t, err)

	assert.NotEmpty(t, item.UUID)
	assert.Equal(t, "personal-bundle", item.ProductSlug)
	assert.Equal(t, int64(1009), item.ProductID)
	assert.Equal(t, int64(4800), item.Amount)
	assert.True(t, item.IsPlan)
	assert.Equal(t, "new", item.Extra.PurchaseType)
}

func TestNormalizeResolvesAliases(t *testing.T) {
	item, err := Normalize(&PurchaseRequest{ProductSlug: "premium"})
	require.NoError(t, err)

	// the canonical slug replaces the alias
	assert.Equal(t, "value_bundle", item.ProductSlug)
	assert.Equal(t, int64(1003), item.ProductID)
}

func TestNormalizeUnknownProduct(t *testing.T) {
	_, err := Normalize(&PurchaseRequest{ProductSlug: "hoverboard-bundle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown product")
}

func TestNormalizeRenewalRequiresPurchaseID(t *testing.T) {
	_, err := Normalize(&PurchaseRequest{
		ProductSlug:  "personal-bundle",
		PurchaseType: "renewal",
	})
	require.Error(t, err)

	item, err := Normalize(&PurchaseRequest{
		ProductSlug:    "personal-bundle",
		PurchaseType:   "renewal",
		PurchaseID:     42,
		PurchaseDomain: "example.com",
	})
	require.NoError(t, err)
	assert.True(t, item.IsRenewal())
	assert.Equal(t, int64(42), item.Extra.PurchaseID)
}

func TestNormalizeDomainMetaFallsBackToPurchaseDomain(t *testing.T) {
	item, err := Normalize(&PurchaseRequest{
		ProductSlug:    "domain_reg",
		PurchaseDomain: "example.com",
	})
	require.NoError(t, err)
	assert.True(t, item.IsDomainRegistration)
	assert.Equal(t, "example.com", item.Meta)

	// an explicit meta wins over the fallback
	item, err = Normalize(&PurchaseRequest{
		ProductSlug:    "domain_reg",
		Meta:           "other.example",
		PurchaseDomain: "example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "other.example", item.Meta)
}

func TestNormalizeEachItemGetsAFreshUUID(t *testing.T) {
	first, err := Normalize(&PurchaseRequest{ProductSlug: "personal-bundle"})
	require.NoError(t, err)
	second, err := Normalize(&PurchaseRequest{ProductSlug: "personal-bundle"})
	require.NoError(t, err)

	assert.NotEqual(t, first.UUID, second.UUID)
}
