package cart

import (
	"context"

	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/rabbitmq"
	"storefront-checkout/internal/repository"
)

type Service struct {
	ctx       context.Context
	rp        repository.IRepository
	publisher *rabbitmq.Publisher
}

type IService interface {
	CreateCart(req *CreateCartRequest) *types.Response
	GetCart(cartKey string) *types.Response
	AddItem(cartKey string, req *PurchaseRequest) *types.Response
	RemoveItem(cartKey string, itemUUID string) *types.Response
	ApplyCoupon(cartKey string, code string) *types.Response
	RemoveCoupon(cartKey string) *types.Response
	UpdateLocation(cartKey string, req *UpdateLocationRequest) *types.Response

	// Cross-service access used by the checkout orchestration.
	GetResponseCart(ctx context.Context, cartKey string) (*models.ResponseCart, error)
	PushTaxLocation(ctx context.Context, cartKey string, loc models.TaxLocation) (*models.ResponseCart, error)
	DestroyCart(ctx context.Context, cartKey string) error
}

func NewService(ctx context.Context, rp repository.IRepository, publisher *rabbitmq.Publisher) IService {
	return &Service{
		ctx:       ctx,
		rp:        rp,
		publisher: publisher,
	}
}

// Request/Response DTOs

type CreateCartRequest struct {
	SiteSlug              string   `json:"site_slug"`
	IsSignedIn            bool     `json:"is_signed_in"`
	CreditsInteger        int64    `json:"credits_integer" binding:"omitempty,gte=0"`
	CreateNewBlog         bool     `json:"create_new_blog"`
	AllowedPaymentMethods []string `json:"allowed_payment_methods"`
}

type UpdateLocationRequest struct {
	CountryCode  string `json:"country_code" binding:"required,country"`
	PostalCode   string `json:"postal_code" binding:"omitempty,postal"`
	Subdivision  string `json:"subdivision_code"`
	VatID        string `json:"vat_id"`
	Organization string `json:"organization"`
	Address      string `json:"address"`
}

type CouponRequest struct {
	Code string `json:"code" binding:"required"`
}
