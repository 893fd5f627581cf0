package cart

import (
	"fmt"

	"storefront-checkout/internal/common/models"

	"github.com/google/uuid"
)

// PurchaseRequest is the raw URL-driven purchase intent: a plan slug or
// product alias, optionally a renewal of an existing purchase.
type PurchaseRequest struct {
	ProductSlug    string `json:"product_slug" binding:"required"`
	Meta           string `json:"meta"`
	PurchaseType   string `json:"purchase_type" binding:"omitempty,oneof=new renewal"`
	PurchaseID     int64  `json:"purchase_id"`
	PurchaseDomain string `json:"purchase_domain"`
	IsExtraLicence bool   `json:"is_extra_licence"`
	SignupFlow     string `json:"signup_flow"`
}

// Normalize turns a purchase request into a canonical cart item with the
// product id and flags resolved from the catalog.
func Normalize(req *PurchaseRequest) (*models.CartItem, error) {
	product, ok := FindProduct(req.ProductSlug)
	if !ok {
		return nil, fmt.Errorf("unknown product: %s", req.ProductSlug)
	}

	purchaseType := req.PurchaseType
	if purchaseType == "" {
		purchaseType = "new"
	}
	if purchaseType == "renewal" && req.PurchaseID == 0 {
		return nil, fmt.Errorf("renewal request for %s is missing a purchase id", req.ProductSlug)
	}

	item := &models.CartItem{
		UUID:        uuid.New().String(),
		ProductSlug: product.Slug,
		ProductID:   product.ID,
		Meta:        req.Meta,
		Amount:      product.Amount,
		Extra: models.CartItemExtra{
			PurchaseType:   purchaseType,
			PurchaseID:     req.PurchaseID,
			PurchaseDomain: req.PurchaseDomain,
			IsExtraLicence: req.IsExtraLicence,
			SignupFlow:     req.SignupFlow,
		},
		IsDomainRegistration: product.IsDomainRegistration,
		IsDomainTransfer:     product.IsDomainTransfer,
		IsGSuite:             product.IsGSuite,
		IsPlan:               product.IsPlan,
		IsEcommercePlan:      product.IsEcommercePlan,
		IsJetpackProduct:     product.IsJetpackProduct,
		IsAkismetProduct:     product.IsAkismetProduct,
	}

	// Domain products carry the domain name in meta
	if (item.IsDomainRegistration || item.IsDomainTransfer || item.IsGSuite) && item.Meta == "" {
		item.Meta = req.PurchaseDomain
	}

	return item, nil
}
