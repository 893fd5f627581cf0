package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardStore() *FieldStore {
	return NewFieldStore((&cardProcessor{}).FieldSchema())
}

func TestFieldStoreMasksOnSet(t *testing.T) {
	store := cardStore()

	store.SetField("cardNumber", "4242-4242 4242x4242")
	store.SetField("expiry", "12/25")
	store.SetField("cvv", "1a2b3")

	assert.Equal(t, "4242 4242 4242 4242", store.Value("cardNumber"))
	assert.Equal(t, "12/25", store.Value("expiry"))
	assert.Equal(t, "123", store.Value("cvv"))
}

func TestFieldStoreIgnoresUnknownFields(t *testing.T) {
	store := cardStore()
	store.SetField("isAdmin", "true")
	assert.Empty(t, store.Value("isAdmin"))
	_, ok := store.fields["isAdmin"]
	assert.False(t, ok)
}

func TestFieldStoreValidateRequired(t *testing.T) {
	store := cardStore()

	require.False(t, store.Validate())
	errs := store.FieldErrors()
	assert.Len(t, errs, 4)
	assert.Contains(t, errs["cardholderName"][0], "required")
}

func TestFieldStoreValidateContent(t *testing.T) {
	store := cardStore()
	store.SetField("cardholderName", "Ada Lovelace")
	store.SetField("cardNumber", "1234 5678 9012 3456") // fails Luhn
	store.SetField("expiry", "13/25")
	store.SetField("cvv", "123")

	require.False(t, store.Validate())
	errs := store.FieldErrors()
	assert.Contains(t, errs["cardNumber"][0], "card number")
	assert.Contains(t, errs["expiry"][0], "expiry")
	assert.NotContains(t, errs, "cvv")
}

func TestFieldStoreValidCardForm(t *testing.T) {
	store := cardStore()
	store.SetField("cardholderName", "Ada Lovelace")
	store.SetField("cardNumber", "4242424242424242")
	store.SetField("expiry", "1230")
	store.SetField("cvv", "123")

	assert.True(t, store.Validate())
	assert.Empty(t, store.FieldErrors())
	assert.Equal(t, "12/30", store.Value("expiry"))
}

func TestFieldStoreSetFieldClearsPriorErrors(t *testing.T) {
	store := cardStore()
	store.Validate()
	require.NotEmpty(t, store.FieldErrors()["cvv"])

	store.SetField("cvv", "123")
	assert.Empty(t, store.FieldErrors()["cvv"])
}

func TestFieldStoreValues(t *testing.T) {
	store := NewFieldStore([]FieldSpec{
		{Name: "customerName", Label: "Name", Required: true},
		{Name: "customerBank", Label: "Bank"},
	})
	store.SetField("customerName", "Ada")

	assert.Equal(t, map[string]string{
		"customerName": "Ada",
		"customerBank": "",
	}, store.Values())
}

func TestMaskCPF(t *testing.T) {
	assert.Equal(t, "123.456.789-09", maskCPF("12345678909"))
	assert.Equal(t, "123.456", maskCPF("123456"))
	assert.Equal(t, "123.456.789-09", maskCPF("123.456.789-09999"))
}

func TestMaskExpiryTruncates(t *testing.T) {
	assert.Equal(t, "12/34", maskExpiry("123456"))
	assert.Equal(t, "12", maskExpiry("12"))
	assert.Equal(t, "1", maskExpiry("1"))
}

func TestLuhn(t *testing.T) {
	assert.True(t, luhnValid("4242424242424242"))
	assert.False(t, luhnValid("4242424242424241"))
}
