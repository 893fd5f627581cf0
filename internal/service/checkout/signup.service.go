package checkout

import (
	"errors"
	"strings"
	"time"

	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/pkg/redis"
)

// signupDestinationTTL matches the lifetime of a signup flow: long
// enough to survive the checkout round-trip, short enough not to hijack
// an unrelated purchase weeks later.
const signupDestinationTTL = 7 * 24 * time.Hour

// SignupDestinationStore is the persisted key-value record replacing the
// signup-destination cookie: a URL written by the signup flow and read
// back when checkout decides where to land after payment.
type SignupDestinationStore interface {
	Retrieve(key string, isAtomicSite bool) string
	Persist(key string, destination string)
	Clear(key string)
}

type signupDestinationStore struct {
	redis redis.IRedis
}

func NewSignupDestinationStore(rds redis.IRedis) SignupDestinationStore {
	return &signupDestinationStore{redis: rds}
}

func signupDestinationKey(key string) string {
	return "signup-destination:" + key
}

// Retrieve returns the stored destination, rewritten for atomic sites
// whose public domain differs from the one the signup flow recorded.
func (s *signupDestinationStore) Retrieve(key string, isAtomicSite bool) string {
	raw, err := s.redis.Get(signupDestinationKey(key))
	if err != nil {
		if !errors.Is(err, redis.NilType) {
			logger.Warning.Printf("signup destination read failed for %s: %v", key, err)
		}
		return ""
	}
	if isAtomicSite {
		raw = strings.Replace(raw, ".wordpress.com", ".wpcomstaging.com", 1)
	}
	return raw
}

func (s *signupDestinationStore) Persist(key string, destination string) {
	if err := s.redis.Set(signupDestinationKey(key), destination, signupDestinationTTL); err != nil {
		logger.Warning.Printf("signup destination write failed for %s: %v", key, err)
	}
}

func (s *signupDestinationStore) Clear(key string) {
	if err := s.redis.Del(signupDestinationKey(key)); err != nil {
		logger.Warning.Printf("signup destination clear failed for %s: %v", key, err)
	}
}
