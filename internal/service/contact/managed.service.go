package contact

import (
	"storefront-checkout/internal/common/models"
)

// Internal field names. The wire mapping below converts these to the
// snake_case keys the contact cache endpoint speaks.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldAddress1     = "address1"
	FieldCity         = "city"
	FieldState        = "state"
	FieldPostalCode   = "postalCode"
	FieldCountryCode  = "countryCode"
	FieldOrganization = "organization"
	FieldVatID        = "vatId"
)

var wireFields = []struct {
	Wire  string
	Field string
}{
	{"first_name", FieldFirstName},
	{"last_name", FieldLastName},
	{"email", FieldEmail},
	{"phone", FieldPhone},
	{"address_1", FieldAddress1},
	{"city", FieldCity},
	{"state", FieldState},
	{"postal_code", FieldPostalCode},
	{"country_code", FieldCountryCode},
	{"organization", FieldOrganization},
	{"vat_id", FieldVatID},
}

// ManagedContactDetails maps field name to its managed entry. All
// mutation goes through the methods below so touch/error bookkeeping
// stays consistent.
type ManagedContactDetails map[string]models.ManagedContactField

func NewManagedContactDetails() ManagedContactDetails {
	return ManagedContactDetails{}
}

// FromValues builds details from a flat field map, marking every
// provided field as touched.
func FromValues(values map[string]string) ManagedContactDetails {
	d := NewManagedContactDetails()
	for name, value := range values {
		d.SetValue(name, value)
	}
	return d
}

func (d ManagedContactDetails) Value(name string) string {
	return d[name].Value
}

func (d ManagedContactDetails) SetValue(name, value string) {
	entry := d[name]
	entry.Value = value
	entry.IsTouched = true
	entry.Errors = nil
	d[name] = entry
}

// Seed fills a field without marking it touched, for hydrated or
// guessed defaults that should not trip validation styling.
func (d ManagedContactDetails) Seed(name, value string) {
	entry := d[name]
	entry.Value = value
	d[name] = entry
}

func (d ManagedContactDetails) SetErrors(name string, errs []string) {
	entry := d[name]
	entry.Errors = errs
	d[name] = entry
}

func (d ManagedContactDetails) AddError(name, message string) {
	entry := d[name]
	entry.Errors = append(entry.Errors, message)
	d[name] = entry
}

// TouchAll forces latent validation errors on every field to render.
func (d ManagedContactDetails) TouchAll() {
	for name, entry := range d {
		entry.IsTouched = true
		d[name] = entry
	}
}

func (d ManagedContactDetails) ClearErrors() {
	for name, entry := range d {
		entry.Errors = nil
		d[name] = entry
	}
}

func (d ManagedContactDetails) HasErrors() bool {
	for _, entry := range d {
		if len(entry.Errors) > 0 {
			return true
		}
	}
	return false
}

func (d ManagedContactDetails) FieldErrors() map[string][]string {
	out := map[string][]string{}
	for name, entry := range d {
		if len(entry.Errors) > 0 {
			out[name] = entry.Errors
		}
	}
	return out
}

// MergeErrors attaches validator output onto the matching fields,
// creating entries for fields the user never typed into.
func (d ManagedContactDetails) MergeErrors(errs map[string][]string) {
	for name, messages := range errs {
		d.SetErrors(name, messages)
	}
}

// Dehydrate flattens the details into the snake_case wire map used by
// the contact cache. Untracked fields are dropped.
func (d ManagedContactDetails) Dehydrate() map[string]string {
	out := map[string]string{}
	for _, f := range wireFields {
		if entry, ok := d[f.Field]; ok {
			out[f.Wire] = entry.Value
		}
	}
	return out
}

// Hydrate rebuilds details from a snake_case wire map. Hydrated fields
// are untouched so pre-filled values do not trip validation styling.
func Hydrate(wire map[string]string) ManagedContactDetails {
	d := NewManagedContactDetails()
	for _, f := range wireFields {
		if value, ok := wire[f.Wire]; ok {
			d[f.Field] = models.ManagedContactField{Value: value}
		}
	}
	return d
}
