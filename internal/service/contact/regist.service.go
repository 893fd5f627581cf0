package contact

import (
	"context"

	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/redis"
	"storefront-checkout/internal/repository"
	"storefront-checkout/internal/service/cart"
)

type Service struct {
	ctx   context.Context
	rp    repository.IRepository
	cart  cart.IService
	redis redis.IRedis
}

type IService interface {
	GetDomainContactInformation(userID string, geoCountry string) *types.Response
	SaveDomainContactInformation(userID string, wire map[string]string) *types.Response
	ValidateContact(cartKey string, userID string, req *ContactDetailsRequest, displayErrors bool) *types.Response

	// Cross-service entry points used by the checkout step sequencer.
	Evaluate(ctx context.Context, details ManagedContactDetails, isLoggedOut bool, rc *models.ResponseCart, currentQuery string) (*ValidationResult, error)
	PersistOnSuccess(ctx context.Context, userID string, details ManagedContactDetails, result *ValidationResult, cartKey string) error
}

func NewService(ctx context.Context, rp repository.IRepository, cartSvc cart.IService, rds redis.IRedis) IService {
	return &Service{
		ctx:   ctx,
		rp:    rp,
		cart:  cartSvc,
		redis: rds,
	}
}

// ContactDetailsRequest is the payload of both validation endpoints. Keys
// of Fields are the internal camelCase field names.
type ContactDetailsRequest struct {
	Fields       map[string]string `json:"fields" binding:"required"`
	CurrentQuery string            `json:"current_query"`
}
