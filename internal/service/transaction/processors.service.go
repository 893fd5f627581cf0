package transaction

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"storefront-checkout/internal/common/enum"
)

// GatewayConfig addresses the upstream payment network the redirect and
// manual methods hand the buyer to. CallbackSecret is the shared key the
// gateway signs its confirmation callbacks with.
type GatewayConfig struct {
	BaseURL        string
	CallbackSecret string
}

// NewDefaultDispatcher registers every supported processor.
func NewDefaultDispatcher(gw GatewayConfig) *Dispatcher {
	return NewDispatcher(
		&freePurchaseProcessor{},
		&fullCreditsProcessor{},
		&cardProcessor{},
		&existingCardProcessor{},
		&applePayProcessor{},
		&paypalProcessor{gw: gw},
		&wechatProcessor{gw: gw},
		newRedirectProcessor(gw, "alipay", nil),
		newRedirectProcessor(gw, "ideal", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
			{Name: "customerBank", Label: "Bank", Required: true},
		}),
		newRedirectProcessor(gw, "bancontact", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
		}),
		newRedirectProcessor(gw, "giropay", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
		}),
		newRedirectProcessor(gw, "sofort", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
		}),
		newRedirectProcessor(gw, "eps", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
			{Name: "customerBank", Label: "Bank", Required: true},
		}),
		newRedirectProcessor(gw, "p24", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
			{Name: "customerEmail", Label: "Email", Required: true, Validate: validateEmailField},
		}),
		newRedirectProcessor(gw, "netbanking", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
		}),
		newRedirectProcessor(gw, "ebanx-tef", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
			{Name: "customerBank", Label: "Bank", Required: true},
			{Name: "documentNumber", Label: "Taxpayer number (CPF)", Required: true, Mask: maskCPF, Validate: validateCPF},
		}),
		newRedirectProcessor(gw, "id-wallet", []FieldSpec{
			{Name: "customerName", Label: "Name", Required: true},
			{Name: "customerPhone", Label: "OVO phone number", Required: true, Mask: maskDigits, Validate: validatePhoneDigits},
		}),
	)
}

// nextReceiptID mints receipt identifiers for synchronously completed
// charges. Millisecond clock keeps them unique enough per instance and
// monotonic for support lookups.
func nextReceiptID() int64 {
	return time.Now().UnixMilli()
}

func (gw GatewayConfig) redirectURL(method, orderID, successURL string) string {
	u := strings.TrimSuffix(gw.BaseURL, "/") + "/" + method + "/" + orderID
	if successURL != "" {
		u += "?redirect_to=" + url.QueryEscape(successURL)
	}
	return u
}

/*----------- synchronous processors -----------*/

type freePurchaseProcessor struct{}

func (p *freePurchaseProcessor) ID() string { return "free-purchase" }

func (p *freePurchaseProcessor) FieldSchema() []FieldSpec { return nil }

func (p *freePurchaseProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	if data.TotalInteger != 0 {
		return nil, fmt.Errorf("free purchase submitted with non-zero total %d", data.TotalInteger)
	}
	return &ProcessorResponse{Type: enum.PROCESSOR_COMPLETE, ReceiptID: nextReceiptID()}, nil
}

type fullCreditsProcessor struct{}

func (p *fullCreditsProcessor) ID() string { return "full-credits" }

func (p *fullCreditsProcessor) FieldSchema() []FieldSpec { return nil }

func (p *fullCreditsProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	if data.TotalInteger != 0 {
		return nil, fmt.Errorf("credits do not cover total %d", data.TotalInteger)
	}
	return &ProcessorResponse{Type: enum.PROCESSOR_COMPLETE, ReceiptID: nextReceiptID()}, nil
}

type cardProcessor struct{}

func (p *cardProcessor) ID() string { return "card" }

func (p *cardProcessor) FieldSchema() []FieldSpec {
	return []FieldSpec{
		{Name: "cardholderName", Label: "Cardholder name", Required: true},
		{Name: "cardNumber", Label: "Card number", Required: true, Mask: maskCardNumber, Validate: validateCardNumber},
		{Name: "expiry", Label: "Expiry date", Required: true, Mask: maskExpiry, Validate: validateExpiry},
		{Name: "cvv", Label: "Security code", Required: true, Mask: maskDigits, Validate: validateCVV},
	}
}

func (p *cardProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	return &ProcessorResponse{Type: enum.PROCESSOR_COMPLETE, ReceiptID: nextReceiptID()}, nil
}

type existingCardProcessor struct{}

func (p *existingCardProcessor) ID() string { return "existing-card" }

func (p *existingCardProcessor) FieldSchema() []FieldSpec {
	return []FieldSpec{
		{Name: "storedCardId", Label: "Saved card", Required: true},
	}
}

func (p *existingCardProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	return &ProcessorResponse{Type: enum.PROCESSOR_COMPLETE, ReceiptID: nextReceiptID()}, nil
}

type applePayProcessor struct{}

func (p *applePayProcessor) ID() string { return "apple-pay" }

func (p *applePayProcessor) FieldSchema() []FieldSpec {
	return []FieldSpec{
		{Name: "paymentToken", Label: "Payment token", Required: true},
	}
}

func (p *applePayProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	return &ProcessorResponse{Type: enum.PROCESSOR_COMPLETE, ReceiptID: nextReceiptID()}, nil
}

/*----------- redirect processors -----------*/

type paypalProcessor struct {
	gw GatewayConfig
}

func (p *paypalProcessor) ID() string { return "paypal" }

func (p *paypalProcessor) FieldSchema() []FieldSpec { return nil }

func (p *paypalProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	return &ProcessorResponse{
		Type:        enum.PROCESSOR_REDIRECT,
		RedirectURL: p.gw.redirectURL("paypal", data.OrderID, data.SuccessURL),
	}, nil
}

// redirectProcessor covers the region-specific bank redirect methods.
// They differ only in id and field schema; the submit contract is
// identical.
type redirectProcessor struct {
	gw     GatewayConfig
	id     string
	schema []FieldSpec
}

func newRedirectProcessor(gw GatewayConfig, id string, schema []FieldSpec) *redirectProcessor {
	return &redirectProcessor{gw: gw, id: id, schema: schema}
}

func (p *redirectProcessor) ID() string { return p.id }

func (p *redirectProcessor) FieldSchema() []FieldSpec { return p.schema }

func (p *redirectProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	return &ProcessorResponse{
		Type:        enum.PROCESSOR_REDIRECT,
		RedirectURL: p.gw.redirectURL(p.id, data.OrderID, data.SuccessURL),
	}, nil
}

/*----------- manual follow-up processors -----------*/

type wechatProcessor struct {
	gw GatewayConfig
}

func (p *wechatProcessor) ID() string { return "wechat" }

func (p *wechatProcessor) FieldSchema() []FieldSpec {
	return []FieldSpec{
		{Name: "customerName", Label: "Name", Required: true},
	}
}

// Submit returns a MANUAL response: the buyer scans the QR payload in
// the WeChat app while the client polls the order status.
func (p *wechatProcessor) Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error) {
	return &ProcessorResponse{
		Type: enum.PROCESSOR_MANUAL,
		Payload: map[string]any{
			"order_id":     data.OrderID,
			"redirect_url": p.gw.redirectURL("wechat", data.OrderID, ""),
			"qr_code":      "weixin://wxpay/bizpayurl?pr=" + data.OrderID,
		},
	}, nil
}

/*----------- masks and field validators -----------*/

var nonDigits = regexp.MustCompile(`\D`)

func maskDigits(v string) string {
	return nonDigits.ReplaceAllString(v, "")
}

// maskCardNumber groups digits by four for display parity with the
// embossed number.
func maskCardNumber(v string) string {
	digits := maskDigits(v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func maskExpiry(v string) string {
	digits := maskDigits(v)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) > 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// maskCPF formats a Brazilian taxpayer number as 000.000.000-00.
func maskCPF(v string) string {
	digits := maskDigits(v)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	switch {
	case len(digits) > 9:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	case len(digits) > 6:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:]
	case len(digits) > 3:
		return digits[:3] + "." + digits[3:]
	default:
		return digits
	}
}

func validateCardNumber(v string) string {
	digits := maskDigits(v)
	if len(digits) < 12 || len(digits) > 19 || !luhnValid(digits) {
		return "Please enter a valid card number."
	}
	return ""
}

func validateExpiry(v string) string {
	parts := strings.SplitN(v, "/", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "Please enter a valid expiry date (MM/YY)."
	}
	month := int(parts[0][0]-'0')*10 + int(parts[0][1]-'0')
	if month < 1 || month > 12 {
		return "Please enter a valid expiry date (MM/YY)."
	}
	return ""
}

func validateCVV(v string) string {
	if len(v) < 3 || len(v) > 4 {
		return "Please enter a valid security code."
	}
	return ""
}

func validateCPF(v string) string {
	if len(maskDigits(v)) != 11 {
		return "Please enter a valid CPF."
	}
	return ""
}

func validatePhoneDigits(v string) string {
	if len(v) < 8 || len(v) > 15 {
		return "Please enter a valid phone number."
	}
	return ""
}

var emailFieldPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmailField(v string) string {
	if !emailFieldPattern.MatchString(v) {
		return "Please enter a valid email address."
	}
	return ""
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
