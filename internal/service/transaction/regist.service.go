package transaction

import (
	"context"

	"storefront-checkout/internal/common/enum"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/rabbitmq"
	"storefront-checkout/internal/repository"
	"storefront-checkout/internal/service/cart"
	"storefront-checkout/internal/service/checkout"
)

type Service struct {
	ctx        context.Context
	rp         repository.IRepository
	cart       cart.IService
	checkout   checkout.IService
	publisher  *rabbitmq.Publisher
	dispatcher *Dispatcher
	gateway    GatewayConfig
}

type IService interface {
	SubmitPayment(cartKey string, userID string, req *SubmitRequest) *types.Response
	GetOrderStatus(orderID string) *types.Response
	HandleCallback(orderID string, req *CallbackRequest) *types.Response

	// PollOrderStatus blocks until the order reaches a terminal status,
	// the context is cancelled, or the deadline passes.
	PollOrderStatus(ctx context.Context, orderID string) (enum.OrderStatusEnum, error)

	// ReconcileStale expires pending transactions the payment network
	// never confirmed. Driven by the background worker.
	ReconcileStale(ctx context.Context, batchSize int) (int, error)
}

func NewService(ctx context.Context, rp repository.IRepository, cartSvc cart.IService, checkoutSvc checkout.IService, publisher *rabbitmq.Publisher, dispatcher *Dispatcher, gw GatewayConfig) IService {
	return &Service{
		ctx:        ctx,
		rp:         rp,
		cart:       cartSvc,
		checkout:   checkoutSvc,
		publisher:  publisher,
		dispatcher: dispatcher,
		gateway:    gw,
	}
}

// SubmitRequest is the shared submission payload: the chosen processor,
// its validated form fields, and the client context the thank-you
// resolver needs.
type SubmitRequest struct {
	ProcessorID        string            `json:"processor_id" binding:"required"`
	Fields             map[string]string `json:"fields"`
	CustomerName       string            `json:"customer_name"`
	CustomerEmail      string            `json:"customer_email"`
	RedirectTo         string            `json:"redirect_to"`
	Feature            string            `json:"feature"`
	IsJetpackNotAtomic bool              `json:"is_jetpack_not_atomic"`
	IsAtomicSite       bool              `json:"is_atomic_site"`
	HideNudge          bool              `json:"hide_nudge"`
}

// CallbackRequest is the payment network's confirmation webhook body.
// Signature is the hex sha512 of order id + status + receipt id +
// shared secret.
type CallbackRequest struct {
	Status    string `json:"status" binding:"required"`
	ReceiptID int64  `json:"receipt_id"`
	Signature string `json:"signature" binding:"required"`
}
