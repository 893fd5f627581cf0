package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/redis"
)

// contactCacheTTL keeps cached registrant details around long enough to
// cover a return purchase without holding stale addresses forever.
const contactCacheTTL = 30 * 24 * time.Hour

func contactCacheKey(userID string) string {
	return "contact-details:" + userID
}

// GetDomainContactInformation serves the cached contact details in wire
// form, seeding the country from the caller's geo guess on a cache miss
// so the form opens with a sensible default.
func (s *Service) GetDomainContactInformation(userID string, geoCountry string) *types.Response {
	details, err := s.fetchCached(userID, geoCountry)
	if err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to load contact details", Error: err}
	}
	return &types.Response{Code: http.StatusOK, Message: "contact details", Data: details.Dehydrate()}
}

func (s *Service) fetchCached(userID string, geoCountry string) (ManagedContactDetails, error) {
	raw, err := s.redis.Get(contactCacheKey(userID))
	if err != nil {
		if errors.Is(err, redis.NilType) {
			details := NewManagedContactDetails()
			if geoCountry != "" {
				details.Seed(FieldCountryCode, strings.ToUpper(geoCountry))
			}
			return details, nil
		}
		return nil, err
	}

	var wire map[string]string
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, err
	}
	return Hydrate(wire), nil
}

// SaveDomainContactInformation overwrites the cached registrant
// details. The payload speaks the same snake_case wire form the GET
// serves, and unknown keys are dropped by the hydration.
func (s *Service) SaveDomainContactInformation(userID string, wire map[string]string) *types.Response {
	details := Hydrate(wire)
	if err := s.saveCached(userID, details); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to save contact details", Error: err}
	}
	return &types.Response{Code: http.StatusOK, Message: "contact details saved", Data: details.Dehydrate()}
}

func (s *Service) saveCached(userID string, details ManagedContactDetails) error {
	raw, err := json.Marshal(details.Dehydrate())
	if err != nil {
		return err
	}
	return s.redis.Set(contactCacheKey(userID), raw, contactCacheTTL)
}
