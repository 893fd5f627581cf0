package checkout

import (
	"net/http"
	"strings"

	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"

	"github.com/samber/lo"
)

// PaymentMethod is a read-only descriptor for one selectable payment
// option. ProcessorID keys both the dispatcher and the allowed-method
// intersection; stored cards share the "existing-card" processor.
type PaymentMethod struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	ProcessorID string `json:"payment_processor_id"`
	SubmitLabel string `json:"submit_label"`
}

// StoredCard is a saved card on the buyer's account.
type StoredCard struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// BuildContext carries the runtime eligibility inputs for one registry
// build: gateway readiness, wallet availability, saved cards, and the
// caller's optional allow-list override.
type BuildContext struct {
	StripeLoading     bool
	ApplePayAvailable bool
	StoredCards       []StoredCard
	AllowedOverride   []string
}

// Builder assembles the payment method list. It memoizes the stored-card
// descriptors by their identifiers so identical-content refetches of the
// saved-card list do not produce new descriptors.
type Builder struct {
	storedCardSig     string
	storedCardMethods []PaymentMethod
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build constructs every candidate method in a fixed order, dropping the
// ineligible ones afterwards. Candidates whose preconditions are unmet
// (Stripe still loading, wallet unavailable) come back nil and are
// filtered out; the construction order itself never varies between
// calls.
func (b *Builder) Build(rc *models.ResponseCart, bctx BuildContext) []PaymentMethod {
	candidates := []*PaymentMethod{
		{ID: "free-purchase", Label: "Free purchase", ProcessorID: "free-purchase", SubmitLabel: "Complete checkout"},
		{ID: "full-credits", Label: "Credits", ProcessorID: "full-credits", SubmitLabel: "Pay with credits"},
	}
	candidates = append(candidates, b.storedCards(bctx.StoredCards)...)
	candidates = append(candidates,
		newCardMethod(bctx),
		&PaymentMethod{ID: "paypal", Label: "PayPal", ProcessorID: "paypal", SubmitLabel: "Pay with PayPal"},
		newApplePayMethod(bctx),
		&PaymentMethod{ID: "alipay", Label: "Alipay", ProcessorID: "alipay", SubmitLabel: "Pay with Alipay"},
		&PaymentMethod{ID: "wechat", Label: "WeChat Pay", ProcessorID: "wechat", SubmitLabel: "Pay with WeChat Pay"},
		&PaymentMethod{ID: "ideal", Label: "iDEAL", ProcessorID: "ideal", SubmitLabel: "Pay with iDEAL"},
		&PaymentMethod{ID: "bancontact", Label: "Bancontact", ProcessorID: "bancontact", SubmitLabel: "Pay with Bancontact"},
		&PaymentMethod{ID: "giropay", Label: "Giropay", ProcessorID: "giropay", SubmitLabel: "Pay with Giropay"},
		&PaymentMethod{ID: "sofort", Label: "Sofort", ProcessorID: "sofort", SubmitLabel: "Pay with Sofort"},
		&PaymentMethod{ID: "eps", Label: "EPS", ProcessorID: "eps", SubmitLabel: "Pay with EPS"},
		&PaymentMethod{ID: "p24", Label: "Przelewy24", ProcessorID: "p24", SubmitLabel: "Pay with Przelewy24"},
		&PaymentMethod{ID: "netbanking", Label: "Net Banking", ProcessorID: "netbanking", SubmitLabel: "Pay with Net Banking"},
		&PaymentMethod{ID: "ebanx-tef", Label: "Bank transfer (EBANX)", ProcessorID: "ebanx-tef", SubmitLabel: "Pay with bank transfer"},
		&PaymentMethod{ID: "id-wallet", Label: "OVO Wallet", ProcessorID: "id-wallet", SubmitLabel: "Pay with OVO"},
	)

	allowed := allowedProcessors(rc, bctx)

	constructed := lo.FilterMap(candidates, func(m *PaymentMethod, _ int) (PaymentMethod, bool) {
		if m == nil {
			return PaymentMethod{}, false
		}
		return *m, true
	})

	return lo.Filter(constructed, func(m PaymentMethod, _ int) bool {
		return eligible(m, rc) && allowed[m.ProcessorID]
	})
}

func newCardMethod(bctx BuildContext) *PaymentMethod {
	if bctx.StripeLoading {
		return nil
	}
	return &PaymentMethod{ID: "card", Label: "Credit or debit card", ProcessorID: "card", SubmitLabel: "Pay"}
}

func newApplePayMethod(bctx BuildContext) *PaymentMethod {
	if bctx.StripeLoading || !bctx.ApplePayAvailable {
		return nil
	}
	return &PaymentMethod{ID: "apple-pay", Label: "Apple Pay", ProcessorID: "apple-pay", SubmitLabel: "Pay"}
}

func (b *Builder) storedCards(cards []StoredCard) []*PaymentMethod {
	sig := strings.Join(lo.Map(cards, func(c StoredCard, _ int) string { return c.ID }), "|")
	if sig != b.storedCardSig {
		b.storedCardSig = sig
		b.storedCardMethods = lo.Map(cards, func(c StoredCard, _ int) PaymentMethod {
			return PaymentMethod{
				ID:          "existing-card-" + c.ID,
				Label:       c.Brand + " ****" + c.Last4,
				ProcessorID: "existing-card",
				SubmitLabel: "Pay",
			}
		})
	}
	return lo.Map(b.storedCardMethods, func(m PaymentMethod, _ int) *PaymentMethod {
		copied := m
		return &copied
	})
}

// allowedProcessors intersects the caller's override with the cart's
// server-side allow list. The intersection, not the union, decides.
// Stored cards ride on the "card" allowance.
func allowedProcessors(rc *models.ResponseCart, bctx BuildContext) map[string]bool {
	serverAllowed := rc.AllowedPaymentMethods
	out := map[string]bool{}
	for _, id := range serverAllowed {
		if len(bctx.AllowedOverride) == 0 || lo.Contains(bctx.AllowedOverride, id) {
			out[id] = true
		}
	}
	out["existing-card"] = out["card"]
	return out
}

// eligible applies the totals-based rules: free-purchase only for a zero
// total, full-credits only when credits fully cover a non-zero total,
// everything else only when there is something left to charge.
func eligible(m PaymentMethod, rc *models.ResponseCart) bool {
	switch m.ProcessorID {
	case "free-purchase":
		return rc.TotalCostInteger == 0 && rc.CreditsInteger == 0
	case "full-credits":
		return rc.TotalCostInteger == 0 && rc.CreditsInteger > 0
	default:
		return rc.TotalCostInteger > 0
	}
}

func (s *Service) ListPaymentMethods(cartKey string, req *PaymentMethodsRequest) *types.Response {
	rc, err := s.cart.GetResponseCart(s.ctx, cartKey)
	if err != nil {
		return &types.Response{Code: http.StatusNotFound, Message: "cart not found", Error: err}
	}
	methods := s.registry.Build(rc, BuildContext{
		StripeLoading:     req.StripeLoading,
		ApplePayAvailable: req.ApplePayAvailable,
		StoredCards:       req.StoredCards,
		AllowedOverride:   req.AllowedOverride,
	})
	return &types.Response{Code: http.StatusOK, Message: "payment methods", Data: methods}
}
