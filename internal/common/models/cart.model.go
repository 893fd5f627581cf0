package models

import (
	"encoding/json"
	"time"
)

// CartItemExtra carries purchase-request metadata attached by the
// normalizer. PurchaseType is "new" or "renewal".
type CartItemExtra struct {
	PurchaseType   string `json:"purchase_type"`
	PurchaseID     int64  `json:"purchase_id,omitempty"`
	PurchaseDomain string `json:"purchase_domain,omitempty"`
	IsExtraLicence bool   `json:"is_extra_licence,omitempty"`
	SignupFlow     string `json:"signup_flow,omitempty"`
}

// CartItem is the canonical line-item record produced by the cart item
// normalizer. Product flags are resolved once from the catalog so every
// downstream stage can classify the cart without another lookup.
type CartItem struct {
	UUID                 string        `json:"uuid"`
	ProductSlug          string        `json:"product_slug"`
	ProductID            int64         `json:"product_id"`
	Meta                 string        `json:"meta,omitempty"`
	Extra                CartItemExtra `json:"extra"`
	Amount               int64         `json:"amount"`
	IsDomainRegistration bool          `json:"is_domain_registration,omitempty"`
	IsDomainTransfer     bool          `json:"is_domain_transfer,omitempty"`
	IsGSuite             bool          `json:"is_gsuite,omitempty"`
	IsPlan               bool          `json:"is_plan,omitempty"`
	IsEcommercePlan      bool          `json:"is_ecommerce_plan,omitempty"`
	IsJetpackProduct     bool          `json:"is_jetpack_product,omitempty"`
	IsAkismetProduct     bool          `json:"is_akismet_product,omitempty"`
}

func (i CartItem) IsRenewal() bool {
	return i.Extra.PurchaseType == "renewal"
}

// TaxLocation is the resolved tax jurisdiction pushed into the cart after
// contact validation succeeds.
type TaxLocation struct {
	CountryCode  string `json:"country_code,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Subdivision  string `json:"subdivision_code,omitempty"`
	VatID        string `json:"vat_id,omitempty"`
	Organization string `json:"organization,omitempty"`
	Address      string `json:"address,omitempty"`
}

// ResponseCart is the server-synchronized cart aggregate: items plus
// derived totals. It is the single source of truth consulted by every
// downstream checkout stage and is only mutated through the cart service.
type ResponseCart struct {
	CartKey               string      `json:"cart_key"`
	SiteSlug              string      `json:"site_slug,omitempty"`
	Items                 []CartItem  `json:"products"`
	CouponCode            string      `json:"coupon,omitempty"`
	SubtotalInteger       int64       `json:"sub_total_integer"`
	TaxInteger            int64       `json:"total_tax_integer"`
	CreditsInteger        int64       `json:"credits_integer"`
	DiscountInteger       int64       `json:"coupon_savings_integer"`
	TotalCostInteger      int64       `json:"total_cost_integer"`
	TaxLocation           TaxLocation `json:"tax_location"`
	AllowedPaymentMethods []string    `json:"allowed_payment_methods"`
	IsSignedIn            bool        `json:"is_signed_in"`
	CreateNewBlog         bool        `json:"create_new_blog,omitempty"`
}

// Cart is the persisted form of ResponseCart.
type Cart struct {
	ID                    string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CartKey               string    `json:"cart_key" gorm:"type:varchar(64);uniqueIndex;not null"`
	SiteSlug              string    `json:"site_slug" gorm:"type:varchar(255)"`
	Items                 JSONB     `json:"items" gorm:"type:jsonb;not null"`
	CouponCode            string    `json:"coupon_code" gorm:"type:varchar(64)"`
	SubtotalInteger       int64     `json:"subtotal_integer" gorm:"not null;default:0"`
	TaxInteger            int64     `json:"tax_integer" gorm:"not null;default:0"`
	CreditsInteger        int64     `json:"credits_integer" gorm:"not null;default:0"`
	DiscountInteger       int64     `json:"discount_integer" gorm:"not null;default:0"`
	TotalCostInteger      int64     `json:"total_cost_integer" gorm:"not null;default:0"`
	TaxLocation           JSONB     `json:"tax_location" gorm:"type:jsonb"`
	AllowedPaymentMethods JSONB     `json:"allowed_payment_methods" gorm:"type:jsonb"`
	IsSignedIn            bool      `json:"is_signed_in" gorm:"not null;default:false"`
	CreateNewBlog         bool      `json:"create_new_blog" gorm:"not null;default:false"`
	CreatedAt             time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Cart) TableName() string {
	return "carts"
}

// ToResponse inflates the persisted row back into the aggregate consumed
// by the checkout stages.
func (c *Cart) ToResponse() (*ResponseCart, error) {
	rc := &ResponseCart{
		CartKey:          c.CartKey,
		SiteSlug:         c.SiteSlug,
		CouponCode:       c.CouponCode,
		SubtotalInteger:  c.SubtotalInteger,
		TaxInteger:       c.TaxInteger,
		CreditsInteger:   c.CreditsInteger,
		DiscountInteger:  c.DiscountInteger,
		TotalCostInteger: c.TotalCostInteger,
		IsSignedIn:       c.IsSignedIn,
		CreateNewBlog:    c.CreateNewBlog,
	}

	if len(c.Items) > 0 {
		if err := json.Unmarshal(c.Items, &rc.Items); err != nil {
			return nil, err
		}
	}
	if len(c.TaxLocation) > 0 {
		if err := json.Unmarshal(c.TaxLocation, &rc.TaxLocation); err != nil {
			return nil, err
		}
	}
	if len(c.AllowedPaymentMethods) > 0 {
		if err := json.Unmarshal(c.AllowedPaymentMethods, &rc.AllowedPaymentMethods); err != nil {
			return nil, err
		}
	}

	return rc, nil
}
