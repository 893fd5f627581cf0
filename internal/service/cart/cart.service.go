package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	"storefront-checkout/internal/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// defaultAllowedMethods is the server-side allow list applied when the
// caller does not restrict methods at cart creation.
var defaultAllowedMethods = []string{
	"free-purchase", "full-credits", "card", "paypal", "apple-pay",
	"alipay", "wechat", "ideal", "bancontact", "giropay", "sofort",
	"eps", "p24", "netbanking", "ebanx-tef", "id-wallet",
}

// taxBasisPoints maps tax country to a flat rate in basis points.
// Countries absent from the table are untaxed here; their tax is settled
// upstream at receipt time.
var taxBasisPoints = map[string]int64{
	"GB": 2000,
	"XI": 2000,
	"DE": 1900,
	"FR": 2000,
	"NL": 2100,
	"IN": 1800,
	"CA": 500,
	"AU": 1000,
	"JP": 1000,
}

func (s *Service) CreateCart(req *CreateCartRequest) *types.Response {
	cartKey, err := gonanoid.New()
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create cart",
			Error:   err,
		})
	}

	allowed := req.AllowedPaymentMethods
	if len(allowed) == 0 {
		allowed = defaultAllowedMethods
	}
	allowedJSON, _ := json.Marshal(allowed)

	record := &models.Cart{
		CartKey:               cartKey,
		SiteSlug:              req.SiteSlug,
		Items:                 models.JSONB("[]"),
		AllowedPaymentMethods: models.JSONB(allowedJSON),
		CreditsInteger:        req.CreditsInteger,
		IsSignedIn:            req.IsSignedIn,
		CreateNewBlog:         req.CreateNewBlog,
	}
	recomputeTotals(record, nil)

	if err := s.rp.Cart.Create(s.ctx, record); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to save cart",
			Error:   err,
		})
	}

	return s.respondWithCart(record, http.StatusCreated, "Cart created", nil)
}

func (s *Service) GetCart(cartKey string) *types.Response {
	record, resp := s.loadCart(cartKey)
	if resp != nil {
		return resp
	}
	return s.respondWithCart(record, http.StatusOK, "", nil)
}

func (s *Service) AddItem(cartKey string, req *PurchaseRequest) *types.Response {
	record, resp := s.loadCart(cartKey)
	if resp != nil {
		return resp
	}

	item, err := Normalize(req)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Error:   err,
		})
	}

	items, err := decodeItems(record)
	if err != nil {
		return s.corruptCart(cartKey, err)
	}
	items = append(items, *item)

	if resp := s.saveItems(record, items); resp != nil {
		return resp
	}

	s.publisher.TryPublish("cart.item_added", map[string]any{
		"cart_key":     cartKey,
		"product_slug": item.ProductSlug,
	})

	return s.respondWithCart(record, http.StatusOK, "Item added", nil)
}

func (s *Service) RemoveItem(cartKey string, itemUUID string) *types.Response {
	record, resp := s.loadCart(cartKey)
	if resp != nil {
		return resp
	}

	items, err := decodeItems(record)
	if err != nil {
		return s.corruptCart(cartKey, err)
	}

	remaining := lo.Reject(items, func(i models.CartItem, _ int) bool {
		return i.UUID == itemUUID
	})
	if len(remaining) == len(items) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusNotFound,
			Message: "Item not found in cart",
		})
	}

	if resp := s.saveItems(record, remaining); resp != nil {
		return resp
	}

	return s.respondWithCart(record, http.StatusOK, "Item removed", nil)
}

func (s *Service) ApplyCoupon(cartKey string, code string) *types.Response {
	record, resp := s.loadCart(cartKey)
	if resp != nil {
		return resp
	}

	_, couponErr := LookupCoupon(code)
	if couponErr != "" {
		// Coupon failures are transient notices, not generic errors.
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: couponErr.ToString(),
			Data: types.Notice{
				Kind:    "error",
				Message: couponErr.Notice(),
			},
		})
	}

	record.CouponCode = code
	items, err := decodeItems(record)
	if err != nil {
		return s.corruptCart(cartKey, err)
	}
	if resp := s.saveItems(record, items); resp != nil {
		return resp
	}

	return s.respondWithCart(record, http.StatusOK, "Coupon applied", &types.Notice{
		Kind:    "success",
		Message: "Coupon applied: " + code + ", you saved " + helper.FormatAmount(record.DiscountInteger) + ".",
	})
}

func (s *Service) RemoveCoupon(cartKey string) *types.Response {
	record, resp := s.loadCart(cartKey)
	if resp != nil {
		return resp
	}

	record.CouponCode = ""
	items, err := decodeItems(record)
	if err != nil {
		return s.corruptCart(cartKey, err)
	}
	if resp := s.saveItems(record, items); resp != nil {
		return resp
	}

	return s.respondWithCart(record, http.StatusOK, "Coupon removed", nil)
}

func (s *Service) UpdateLocation(cartKey string, req *UpdateLocationRequest) *types.Response {
	loc := models.TaxLocation{
		CountryCode:  req.CountryCode,
		PostalCode:   req.PostalCode,
		Subdivision:  req.Subdivision,
		VatID:        req.VatID,
		Organization: req.Organization,
		Address:      req.Address,
	}

	record, resp := s.loadCart(cartKey)
	if resp != nil {
		return resp
	}

	if resp := s.applyLocation(record, loc); resp != nil {
		return resp
	}

	return s.respondWithCart(record, http.StatusOK, "Tax location updated", nil)
}

// GetResponseCart loads the cart aggregate for downstream checkout
// stages.
func (s *Service) GetResponseCart(ctx context.Context, cartKey string) (*models.ResponseCart, error) {
	record, err := s.rp.Cart.FindByKey(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	return record.ToResponse()
}

// PushTaxLocation is the contact validator's success side effect: the
// resolved tax jurisdiction lands in the cart and totals are recomputed.
func (s *Service) PushTaxLocation(ctx context.Context, cartKey string, loc models.TaxLocation) (*models.ResponseCart, error) {
	record, err := s.rp.Cart.FindByKey(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	if resp := s.applyLocation(record, loc); resp != nil {
		return nil, resp.Error
	}
	return record.ToResponse()
}

// DestroyCart removes the cart after a successful payment.
func (s *Service) DestroyCart(ctx context.Context, cartKey string) error {
	return s.rp.Cart.Delete(ctx, cartKey)
}

func (s *Service) applyLocation(record *models.Cart, loc models.TaxLocation) *types.Response {
	locJSON, err := json.Marshal(loc)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to encode tax location",
			Error:   err,
		})
	}
	record.TaxLocation = models.JSONB(locJSON)

	items, err := decodeItems(record)
	if err != nil {
		return s.corruptCart(record.CartKey, err)
	}
	return s.saveItems(record, items)
}

// saveItems re-encodes items, recomputes totals, and persists. All cart
// mutations funnel through here so totals can never go stale.
func (s *Service) saveItems(record *models.Cart, items []models.CartItem) *types.Response {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to encode cart items",
			Error:   err,
		})
	}
	record.Items = models.JSONB(itemsJSON)
	recomputeTotals(record, items)

	if err := s.rp.Cart.Save(s.ctx, record); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to save cart",
			Error:   err,
		})
	}
	return nil
}

func recomputeTotals(record *models.Cart, items []models.CartItem) {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Amount
	}

	var discount int64
	if record.CouponCode != "" {
		if coupon, couponErr := LookupCoupon(record.CouponCode); couponErr == "" {
			discount = subtotal * int64(coupon.PercentOff) / 100
		} else {
			// The coupon stopped being valid since it was applied;
			// drop it rather than keep charging the old price.
			record.CouponCode = ""
		}
	}

	var taxCountry string
	if len(record.TaxLocation) > 0 {
		var loc models.TaxLocation
		if err := json.Unmarshal(record.TaxLocation, &loc); err == nil {
			taxCountry = loc.CountryCode
		}
	}
	taxable := subtotal - discount
	tax := taxable * taxBasisPoints[taxCountry] / 10000

	total := taxable + tax - record.CreditsInteger
	if total < 0 {
		total = 0
	}

	record.SubtotalInteger = subtotal
	record.DiscountInteger = discount
	record.TaxInteger = tax
	record.TotalCostInteger = total
}

func (s *Service) loadCart(cartKey string) (*models.Cart, *types.Response) {
	record, err := s.rp.Cart.FindByKey(s.ctx, cartKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ParseResponse(&types.Response{
				Code:    http.StatusNotFound,
				Message: "Cart not found",
			})
		}
		return nil, helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load cart",
			Error:   err,
		})
	}
	return record, nil
}

func (s *Service) corruptCart(cartKey string, err error) *types.Response {
	logger.Error.Printf("corrupt cart payload for %s: %v", cartKey, err)
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusInternalServerError,
		Message: "Cart payload is unreadable",
		Error:   err,
	})
}

func decodeItems(record *models.Cart) ([]models.CartItem, error) {
	var items []models.CartItem
	if len(record.Items) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(record.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) respondWithCart(record *models.Cart, code int, message string, notice *types.Notice) *types.Response {
	rc, err := record.ToResponse()
	if err != nil {
		return s.corruptCart(record.CartKey, err)
	}

	data := any(rc)
	if notice != nil {
		data = map[string]any{"cart": rc, "notice": notice}
	}

	return helper.ParseResponse(&types.Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// PureRenewal reports whether every item in the cart is a renewal.
// Empty carts are not pure renewals.
func PureRenewal(rc *models.ResponseCart) bool {
	if len(rc.Items) == 0 {
		return false
	}
	return lo.EveryBy(rc.Items, func(i models.CartItem) bool {
		return i.IsRenewal()
	})
}

// CreditsCoverTotal reports whether available credits fully absorb the
// pre-credit cost of a non-empty cart.
func CreditsCoverTotal(rc *models.ResponseCart) bool {
	preCredit := rc.SubtotalInteger - rc.DiscountInteger + rc.TaxInteger
	return preCredit > 0 && rc.CreditsInteger >= preCredit
}
