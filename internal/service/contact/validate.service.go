package contact

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/pkg/redis"
)

// ValidationResult is the outcome of a contact validation pass. Errors
// are field-scoped and returned as data, never as a Go error.
type ValidationResult struct {
	IsValid          bool                        `json:"is_valid"`
	ContactType      enum.ContactDetailsTypeEnum `json:"contact_type"`
	FieldErrors      map[string][]string         `json:"field_errors,omitempty"`
	LoginRedirectURL string                      `json:"login_redirect_url,omitempty"`
	TaxLocation      *models.TaxLocation         `json:"-"`
}

type taxRule struct {
	RequiresPostal      bool
	RequiresSubdivision bool
}

// taxRules lists the per-country field requirements beyond the country
// code itself. Countries absent from the table only need the country.
var taxRules = map[string]taxRule{
	"US": {RequiresPostal: true, RequiresSubdivision: true},
	"CA": {RequiresPostal: true, RequiresSubdivision: true},
	"IN": {RequiresPostal: true, RequiresSubdivision: true},
	"GB": {RequiresPostal: true},
	"XI": {RequiresPostal: true},
	"DE": {RequiresPostal: true},
	"FR": {RequiresPostal: true},
	"NL": {RequiresPostal: true},
	"AU": {RequiresPostal: true},
	"JP": {RequiresPostal: true},
}

var (
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9 .\-()]{6,20}$`)
)

// Evaluate runs the full validation pass for the cart's contact
// requirement. It never persists anything; PersistOnSuccess handles the
// tax-location push and cache write so silent pre-flight checks stay
// side-effect free.
func (s *Service) Evaluate(ctx context.Context, details ManagedContactDetails, isLoggedOut bool, rc *models.ResponseCart, currentQuery string) (*ValidationResult, error) {
	result := &ValidationResult{
		ContactType: Classify(rc),
		FieldErrors: map[string][]string{},
	}

	if isLoggedOut {
		if err := s.checkEmailAvailability(details.Value(FieldEmail), rc.CartKey, currentQuery, result); err != nil {
			return nil, err
		}
	}

	switch result.ContactType {
	case enum.CONTACT_NONE:
		// nothing to collect
	case enum.CONTACT_TAX:
		validateTax(details, result)
	case enum.CONTACT_DOMAIN:
		validateDomainRegistrant(details, result)
	case enum.CONTACT_GSUITE:
		validateGSuiteAccount(details, result)
	}

	result.IsValid = len(result.FieldErrors) == 0
	if result.IsValid {
		loc := resolveTaxLocation(details)
		result.TaxLocation = &loc
	}
	return result, nil
}

// PersistOnSuccess pushes the resolved tax location into the cart and
// writes the raw contact details to the cross-session cache. Only called
// after Evaluate reported valid.
func (s *Service) PersistOnSuccess(ctx context.Context, userID string, details ManagedContactDetails, result *ValidationResult, cartKey string) error {
	if result == nil || !result.IsValid || result.TaxLocation == nil {
		return errors.New("contact details have not passed validation")
	}
	if _, err := s.cart.PushTaxLocation(ctx, cartKey, *result.TaxLocation); err != nil {
		return err
	}
	if userID != "" {
		if err := s.saveCached(userID, details); err != nil {
			// cache is best-effort; the checkout keeps going
			logger.Warning.Printf("contact cache save failed for user %s: %v", userID, err)
		}
	}
	return nil
}

func (s *Service) ValidateContact(cartKey string, userID string, req *ContactDetailsRequest, displayErrors bool) *types.Response {
	rc, err := s.cart.GetResponseCart(s.ctx, cartKey)
	if err != nil {
		return &types.Response{Code: http.StatusNotFound, Message: "cart not found", Error: err}
	}

	details := FromValues(req.Fields)
	isLoggedOut := userID == ""

	result, err := s.Evaluate(s.ctx, details, isLoggedOut, rc, req.CurrentQuery)
	if err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "contact validation failed", Error: err}
	}

	if result.IsValid {
		if err := s.PersistOnSuccess(s.ctx, userID, details, result, cartKey); err != nil {
			return &types.Response{Code: http.StatusInternalServerError, Message: "failed to apply contact details", Error: err}
		}
		s.storeSessionDetails(cartKey, details, displayErrors)
		return &types.Response{Code: http.StatusOK, Message: "contact details valid", Data: result}
	}

	if displayErrors {
		details.TouchAll()
		details.MergeErrors(result.FieldErrors)
		s.storeSessionDetails(cartKey, details, true)
		return &types.Response{Code: http.StatusUnprocessableEntity, Message: "contact details invalid", Data: result}
	}

	// Silent pre-flight: report the result without flashing errors at a
	// step the user has not reached.
	return &types.Response{Code: http.StatusOK, Message: "contact details invalid", Data: result}
}

// storeSessionDetails mirrors the working details into the checkout
// session so the wizard can re-render them. Missing sessions are fine;
// validation can run before checkout starts.
func (s *Service) storeSessionDetails(cartKey string, details ManagedContactDetails, includeErrors bool) {
	session, err := s.rp.Checkout.FindByCartKey(s.ctx, cartKey)
	if err != nil {
		return
	}
	if !includeErrors {
		details.ClearErrors()
	}
	raw, err := models.JSONBFrom(details)
	if err != nil {
		logger.Error.Printf("encode contact details for session %s: %v", session.ID, err)
		return
	}
	session.ContactDetails = raw
	if err := s.rp.Checkout.UpdateFields(s.ctx, cartKey, map[string]any{"contact_details": raw}); err != nil {
		logger.Error.Printf("save contact details for session %s: %v", session.ID, err)
	}
}

// checkEmailAvailability rejects addresses that already belong to an
// account and composes the log-in affordance URL, preserving the current
// query string so the user lands back in the same checkout.
func (s *Service) checkEmailAvailability(email, cartKey, currentQuery string, result *ValidationResult) error {
	if email == "" {
		result.FieldErrors[FieldEmail] = append(result.FieldErrors[FieldEmail], "Email address is required.")
		return nil
	}
	if !emailPattern.MatchString(email) {
		result.FieldErrors[FieldEmail] = append(result.FieldErrors[FieldEmail], "Please enter a valid email address.")
		return nil
	}

	_, err := s.redis.Get(accountEmailKey(email))
	if err != nil {
		if errors.Is(err, redis.NilType) {
			return nil
		}
		// fail open: an unreachable account index should not block checkout
		logger.Warning.Printf("email availability lookup failed: %v", err)
		return nil
	}

	result.FieldErrors[FieldEmail] = append(result.FieldErrors[FieldEmail],
		"That email address is already registered. Log in to continue.")

	redirect := "/checkout/" + cartKey
	if currentQuery != "" {
		redirect += "?" + currentQuery
	}
	result.LoginRedirectURL = "/log-in?redirect_to=" + url.QueryEscape(redirect)
	return nil
}

func accountEmailKey(email string) string {
	return "accounts:email:" + strings.ToLower(strings.TrimSpace(email))
}

func validateTax(details ManagedContactDetails, result *ValidationResult) {
	country := requireCountry(details, result)
	if country == "" {
		return
	}

	rule := taxRules[country]
	if rule.RequiresPostal && details.Value(FieldPostalCode) == "" {
		result.FieldErrors[FieldPostalCode] = append(result.FieldErrors[FieldPostalCode], "Postal code is required.")
	}
	if rule.RequiresSubdivision && details.Value(FieldState) == "" {
		result.FieldErrors[FieldState] = append(result.FieldErrors[FieldState], "State or province is required.")
	}

	// A VAT id needs a business identity to invoice against.
	if details.Value(FieldVatID) != "" {
		if details.Value(FieldOrganization) == "" {
			result.FieldErrors[FieldOrganization] = append(result.FieldErrors[FieldOrganization], "Organization is required when a VAT ID is provided.")
		}
		if details.Value(FieldAddress1) == "" {
			result.FieldErrors[FieldAddress1] = append(result.FieldErrors[FieldAddress1], "Address is required when a VAT ID is provided.")
		}
	}
}

func validateDomainRegistrant(details ManagedContactDetails, result *ValidationResult) {
	required := []struct {
		Field   string
		Message string
	}{
		{FieldFirstName, "First name is required."},
		{FieldLastName, "Last name is required."},
		{FieldEmail, "Email address is required."},
		{FieldPhone, "Phone number is required."},
		{FieldAddress1, "Address is required."},
		{FieldCity, "City is required."},
		{FieldPostalCode, "Postal code is required."},
	}
	for _, r := range required {
		if details.Value(r.Field) == "" {
			result.FieldErrors[r.Field] = append(result.FieldErrors[r.Field], r.Message)
		}
	}

	requireCountry(details, result)

	if email := details.Value(FieldEmail); email != "" && !emailPattern.MatchString(email) {
		result.FieldErrors[FieldEmail] = append(result.FieldErrors[FieldEmail], "Please enter a valid email address.")
	}
	if phone := details.Value(FieldPhone); phone != "" && !phonePattern.MatchString(phone) {
		result.FieldErrors[FieldPhone] = append(result.FieldErrors[FieldPhone], "Please enter a valid phone number.")
	}
}

func validateGSuiteAccount(details ManagedContactDetails, result *ValidationResult) {
	if details.Value(FieldFirstName) == "" {
		result.FieldErrors[FieldFirstName] = append(result.FieldErrors[FieldFirstName], "First name is required.")
	}
	if details.Value(FieldLastName) == "" {
		result.FieldErrors[FieldLastName] = append(result.FieldErrors[FieldLastName], "Last name is required.")
	}

	email := details.Value(FieldEmail)
	if email == "" {
		result.FieldErrors[FieldEmail] = append(result.FieldErrors[FieldEmail], "Email address is required.")
	} else if !emailPattern.MatchString(email) {
		result.FieldErrors[FieldEmail] = append(result.FieldErrors[FieldEmail], "Please enter a valid email address.")
	}

	requireCountry(details, result)
}

func requireCountry(details ManagedContactDetails, result *ValidationResult) string {
	country := strings.ToUpper(details.Value(FieldCountryCode))
	if country == "" {
		result.FieldErrors[FieldCountryCode] = append(result.FieldErrors[FieldCountryCode], "Country is required.")
		return ""
	}
	if !countryPattern.MatchString(country) {
		result.FieldErrors[FieldCountryCode] = append(result.FieldErrors[FieldCountryCode], "Please select a valid country.")
		return ""
	}
	return country
}

// resolveTaxLocation builds the location pushed into the cart. A VAT id
// prefixed with a country code overrides the plain contact country, so a
// Northern Ireland "XI..." VAT registration taxes as XI even when the
// contact address says GB.
func resolveTaxLocation(details ManagedContactDetails) models.TaxLocation {
	country := strings.ToUpper(details.Value(FieldCountryCode))
	vat := strings.ToUpper(strings.ReplaceAll(details.Value(FieldVatID), " ", ""))

	if len(vat) >= 2 {
		if prefix := vat[:2]; countryPattern.MatchString(prefix) {
			country = prefix
		}
	}

	return models.TaxLocation{
		CountryCode:  country,
		PostalCode:   details.Value(FieldPostalCode),
		Subdivision:  details.Value(FieldState),
		VatID:        vat,
		Organization: details.Value(FieldOrganization),
		Address:      details.Value(FieldAddress1),
	}
}
