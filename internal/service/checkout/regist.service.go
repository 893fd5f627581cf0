package checkout

import (
	"context"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/redis"
	"storefront-checkout/internal/repository"
	"storefront-checkout/internal/service/cart"
	"storefront-checkout/internal/service/contact"
)

type Service struct {
	ctx      context.Context
	rp       repository.IRepository
	cart     cart.IService
	contact  contact.IService
	signup   SignupDestinationStore
	registry *Builder
}

type IService interface {
	StartCheckout(cartKey string, userID string, geoCountry string) *types.Response
	GetSession(cartKey string) *types.Response
	AdvanceStep(cartKey string, userID string, req *AdvanceStepRequest) *types.Response
	ToggleReview(cartKey string, open bool) *types.Response
	ToggleSummary(cartKey string, open bool) *types.Response
	SetConsent(cartKey string, given bool) *types.Response
	ListPaymentMethods(cartKey string, req *PaymentMethodsRequest) *types.Response

	// Cross-service entry points used by the transaction layer.
	SessionReadyToSubmit(ctx context.Context, cartKey string) (*models.CheckoutSession, *types.Response)
	SetFormStatus(ctx context.Context, session *models.CheckoutSession, status enum.FormStatusEnum) error
	CompletePaymentStep(ctx context.Context, session *models.CheckoutSession) error
	SignupStore() SignupDestinationStore
}

func NewService(ctx context.Context, rp repository.IRepository, cartSvc cart.IService, contactSvc contact.IService, rds redis.IRedis) IService {
	return &Service{
		ctx:      ctx,
		rp:       rp,
		cart:     cartSvc,
		contact:  contactSvc,
		signup:   NewSignupDestinationStore(rds),
		registry: NewBuilder(),
	}
}

type AdvanceStepRequest struct {
	StepID       string            `json:"step_id" binding:"required"`
	Fields       map[string]string `json:"fields"`
	CurrentQuery string            `json:"current_query"`
}

type PaymentMethodsRequest struct {
	StripeLoading     bool         `json:"stripe_loading"`
	ApplePayAvailable bool         `json:"apple_pay_available"`
	StoredCards       []StoredCard `json:"stored_cards"`
	AllowedOverride   []string     `json:"allowed_override"`
}
