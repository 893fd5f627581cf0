package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagedContactDetailsTouchAndErrors(t *testing.T) {
	d := NewManagedContactDetails()
	d.SetValue(FieldFirstName, "Ada")
	d.Seed(FieldCountryCode, "GB")

	assert.True(t, d[FieldFirstName].IsTouched)
	assert.False(t, d[FieldCountryCode].IsTouched)

	d.SetErrors(FieldEmail, []string{"Email address is required."})
	assert.True(t, d.HasErrors())

	d.TouchAll()
	assert.True(t, d[FieldCountryCode].IsTouched)
	assert.True(t, d[FieldEmail].IsTouched)

	d.ClearErrors()
	assert.False(t, d.HasErrors())
}

func TestManagedContactDetailsSetValueClearsFieldErrors(t *testing.T) {
	d := NewManagedContactDetails()
	d.SetErrors(FieldEmail, []string{"Please enter a valid email address."})
	require.True(t, d.HasErrors())

	d.SetValue(FieldEmail, "ada@example.com")
	assert.False(t, d.HasErrors())
}

func TestHydrateDehydrateRoundTrip(t *testing.T) {
	original := NewManagedContactDetails()
	original.SetValue(FieldFirstName, "Ada")
	original.SetValue(FieldLastName, "Lovelace")
	original.SetValue(FieldEmail, "ada@example.com")
	original.SetValue(FieldAddress1, "12 Analytical Way")
	original.SetValue(FieldCity, "London")
	original.SetValue(FieldPostalCode, "SW1A 1AA")
	original.SetValue(FieldCountryCode, "GB")

	rebuilt := Hydrate(original.Dehydrate())

	for name, entry := range original {
		assert.Equal(t, entry.Value, rebuilt.Value(name), "field %s", name)
	}
	// hydrated fields come back untouched
	assert.False(t, rebuilt[FieldEmail].IsTouched)
}

func TestDehydrateDropsUntrackedFields(t *testing.T) {
	d := NewManagedContactDetails()
	d.SetValue("somethingElse", "x")
	d.SetValue(FieldCity, "Berlin")

	wire := d.Dehydrate()
	assert.Equal(t, "Berlin", wire["city"])
	_, ok := wire["somethingElse"]
	assert.False(t, ok)
}
