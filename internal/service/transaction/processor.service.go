package transaction

import (
	"context"
	"fmt"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
)

// TransactionData is the uniform payload handed to every processor:
// buyer identity, the validated method-specific fields, and the cart
// snapshot being charged.
type TransactionData struct {
	OrderID      string
	CartKey      string
	UserID       string
	CustomerName string
	Email        string
	Fields       map[string]string
	Items        []models.CartItem
	TotalInteger int64
	SuccessURL   string
	CancelURL    string
}

// ProcessorResponse is the tagged result of a submission. Exactly one of
// the variant fields is meaningful for its Type: ReceiptID for COMPLETE,
// RedirectURL for REDIRECT, Payload for MANUAL.
type ProcessorResponse struct {
	Type        enum.ProcessorResponseTypeEnum `json:"type"`
	ReceiptID   int64                          `json:"receipt_id,omitempty"`
	RedirectURL string                         `json:"redirect_url,omitempty"`
	Payload     map[string]any                 `json:"payload,omitempty"`
}

// PaymentProcessor is one payment method's adapter. FieldSchema feeds
// the generic field store; Submit performs the charge against the
// payment network.
type PaymentProcessor interface {
	ID() string
	FieldSchema() []FieldSpec
	Submit(ctx context.Context, data *TransactionData) (*ProcessorResponse, error)
}

// Dispatcher maps processor ids to their adapters. Adding a method means
// registering one more adapter, never touching the dispatch itself.
type Dispatcher struct {
	processors map[string]PaymentProcessor
}

func NewDispatcher(processors ...PaymentProcessor) *Dispatcher {
	d := &Dispatcher{processors: map[string]PaymentProcessor{}}
	for _, p := range processors {
		d.processors[p.ID()] = p
	}
	return d
}

func (d *Dispatcher) Get(id string) (PaymentProcessor, error) {
	p, ok := d.processors[id]
	if !ok {
		return nil, fmt.Errorf("no payment processor registered for %q", id)
	}
	return p, nil
}
