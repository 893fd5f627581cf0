package contact

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	"storefront-checkout/internal/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	store map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}}
}

func (f *fakeRedis) Close() error { return nil }

func (f *fakeRedis) Set(key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		f.store[key] = v
	case []byte:
		f.store[key] = string(v)
	}
	return nil
}

func (f *fakeRedis) Get(key string) (string, error) {
	v, ok := f.store[key]
	if !ok {
		return "", redis.NilType
	}
	return v, nil
}

func (f *fakeRedis) Del(key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeRedis) Expire(string, time.Duration) error { return nil }

func taxCart(country string) *models.ResponseCart {
	return &models.ResponseCart{
		CartKey:          "cart-1",
		TotalCostInteger: 9600,
		SubtotalInteger:  9600,
		Items: []models.CartItem{
			{UUID: "i1", Amount: 9600, IsPlan: true, Extra: models.CartItemExtra{PurchaseType: "new"}},
		},
		TaxLocation: models.TaxLocation{CountryCode: country},
	}
}

func domainCart() *models.ResponseCart {
	return &models.ResponseCart{
		CartKey:          "cart-1",
		TotalCostInteger: 1800,
		Items: []models.CartItem{
			{UUID: "i1", Amount: 1800, IsDomainRegistration: true, Extra: models.CartItemExtra{PurchaseType: "new"}},
		},
	}
}

func testService() (*Service, *fakeRedis) {
	rds := newFakeRedis()
	return &Service{ctx: context.Background(), redis: rds}, rds
}

func TestEvaluateTaxRequiresCountry(t *testing.T) {
	s, _ := testService()

	details := FromValues(map[string]string{FieldPostalCode: "10115"})
	result, err := s.Evaluate(context.Background(), details, false, taxCart(""), "")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Equal(t, enum.CONTACT_TAX, result.ContactType)
	assert.NotEmpty(t, result.FieldErrors[FieldCountryCode])
}

func TestEvaluateTaxPerCountryRules(t *testing.T) {
	s, _ := testService()

	tests := []struct {
		name    string
		fields  map[string]string
		wantErr []string
	}{
		{
			name:    "GB needs postal code",
			fields:  map[string]string{FieldCountryCode: "GB"},
			wantErr: []string{FieldPostalCode},
		},
		{
			name:    "US needs postal and state",
			fields:  map[string]string{FieldCountryCode: "US"},
			wantErr: []string{FieldPostalCode, FieldState},
		},
		{
			name:   "country without extra rules passes on country alone",
			fields: map[string]string{FieldCountryCode: "SG"},
		},
		{
			name: "vat id demands organization and address",
			fields: map[string]string{
				FieldCountryCode: "DE",
				FieldPostalCode:  "10115",
				FieldVatID:       "DE123456789",
			},
			wantErr: []string{FieldOrganization, FieldAddress1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Evaluate(context.Background(), FromValues(tt.fields), false, taxCart(""), "")
			require.NoError(t, err)

			if len(tt.wantErr) == 0 {
				assert.True(t, result.IsValid)
				return
			}
			assert.False(t, result.IsValid)
			for _, field := range tt.wantErr {
				assert.NotEmpty(t, result.FieldErrors[field], "expected error on %s", field)
			}
		})
	}
}

func TestEvaluateInvalidAlwaysCarriesFieldErrors(t *testing.T) {
	s, _ := testService()

	result, err := s.Evaluate(context.Background(), NewManagedContactDetails(), false, domainCart(), "")
	require.NoError(t, err)

	require.False(t, result.IsValid)
	assert.NotEmpty(t, result.FieldErrors)
	for field, errs := range result.FieldErrors {
		assert.NotEmpty(t, errs, "field %s has an empty error list", field)
	}
}

func TestEvaluateDomainRegistrant(t *testing.T) {
	s, _ := testService()

	details := FromValues(map[string]string{
		FieldFirstName:   "Ada",
		FieldLastName:    "Lovelace",
		FieldEmail:       "ada@example.com",
		FieldPhone:       "+44 20 7946 0958",
		FieldAddress1:    "12 Analytical Way",
		FieldCity:        "London",
		FieldPostalCode:  "SW1A 1AA",
		FieldCountryCode: "GB",
	})

	result, err := s.Evaluate(context.Background(), details, false, domainCart(), "")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	require.NotNil(t, result.TaxLocation)
	assert.Equal(t, "GB", result.TaxLocation.CountryCode)
}

func TestEvaluateNoneShortCircuits(t *testing.T) {
	s, _ := testService()

	cart := &models.ResponseCart{
		CartKey: "cart-1",
		Items: []models.CartItem{
			{UUID: "i1", Amount: 0, Extra: models.CartItemExtra{PurchaseType: "new"}},
		},
	}

	result, err := s.Evaluate(context.Background(), NewManagedContactDetails(), false, cart, "")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, enum.CONTACT_NONE, result.ContactType)
}

func TestEvaluateVatCountryOverride(t *testing.T) {
	s, _ := testService()

	details := FromValues(map[string]string{
		FieldCountryCode:  "GB",
		FieldPostalCode:   "BT1 5GS",
		FieldVatID:        "XI 123 4567 89",
		FieldOrganization: "Linen Mill Ltd",
		FieldAddress1:     "1 Mill Road",
	})

	result, err := s.Evaluate(context.Background(), details, false, taxCart("GB"), "")
	require.NoError(t, err)
	require.True(t, result.IsValid)

	// the Northern Ireland VAT prefix overrides the contact country
	assert.Equal(t, "XI", result.TaxLocation.CountryCode)
	assert.Equal(t, "XI123456789", result.TaxLocation.VatID)
}

func TestEvaluateLoggedOutEmailTaken(t *testing.T) {
	s, rds := testService()
	rds.store[accountEmailKey("taken@example.com")] = "1"

	details := FromValues(map[string]string{
		FieldEmail:       "taken@example.com",
		FieldCountryCode: "SG",
	})

	result, err := s.Evaluate(context.Background(), details, true, taxCart(""), "coupon=WELCOME10")
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.FieldErrors[FieldEmail])
	assert.Contains(t, result.LoginRedirectURL, "/log-in?redirect_to=")
	assert.Contains(t, result.LoginRedirectURL, "coupon%3DWELCOME10")
}

func TestEvaluateLoggedOutFreshEmailPasses(t *testing.T) {
	s, _ := testService()

	details := FromValues(map[string]string{
		FieldEmail:       "new@example.com",
		FieldCountryCode: "SG",
	})

	result, err := s.Evaluate(context.Background(), details, true, taxCart(""), "")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.LoginRedirectURL)
}

func TestFetchCachedSeedsGeoCountryOnMiss(t *testing.T) {
	s, _ := testService()

	details, err := s.fetchCached("user-1", "de")
	require.NoError(t, err)
	assert.Equal(t, "DE", details.Value(FieldCountryCode))
	assert.False(t, details[FieldCountryCode].IsTouched)
}

func TestCacheSaveThenFetchRoundTrip(t *testing.T) {
	s, _ := testService()

	original := FromValues(map[string]string{
		FieldFirstName:   "Ada",
		FieldCountryCode: "GB",
		FieldPostalCode:  "SW1A 1AA",
	})
	require.NoError(t, s.saveCached("user-1", original))

	reloaded, err := s.fetchCached("user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada", reloaded.Value(FieldFirstName))
	assert.Equal(t, "GB", reloaded.Value(FieldCountryCode))
	assert.Equal(t, "SW1A 1AA", reloaded.Value(FieldPostalCode))
}

func TestSaveDomainContactInformationRoundTrip(t *testing.T) {
	s, _ := testService()

	resp := s.SaveDomainContactInformation("user-1", map[string]string{
		"first_name":   "Ada",
		"country_code": "GB",
		"postal_code":  "SW1A 1AA",
		"shoe_size":    "38", // unknown keys are dropped
	})
	require.Equal(t, http.StatusOK, resp.Code)

	saved := resp.Data.(map[string]string)
	assert.Equal(t, "Ada", saved["first_name"])
	_, ok := saved["shoe_size"]
	assert.False(t, ok)

	reloaded, err := s.fetchCached("user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada", reloaded.Value(FieldFirstName))
	assert.Equal(t, "GB", reloaded.Value(FieldCountryCode))
}
