package transaction

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"testing"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/rabbitmq"
	"storefront-checkout/internal/repository"
	"storefront-checkout/internal/service/cart"
	"storefront-checkout/internal/service/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDestinationKeyPrefersUserID(t *testing.T) {
	assert.Equal(t, "user-1", destinationKey("user-1", "cart-1"))
	assert.Equal(t, "cart-1", destinationKey("", "cart-1"))
}

func TestInNudgeBucketIsDeterministic(t *testing.T) {
	first := inNudgeBucket("user-1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, inNudgeBucket("user-1"))
	}
}

func TestFormatReceiptID(t *testing.T) {
	assert.Equal(t, "", formatReceiptID(0))
	assert.Equal(t, "1756628400000", formatReceiptID(1756628400000))
}

type fakeDestStore struct {
	destinations map[string]string
}

func (f *fakeDestStore) Retrieve(key string, _ bool) string { return f.destinations[key] }

func (f *fakeDestStore) Persist(key, destination string) { f.destinations[key] = destination }

func (f *fakeDestStore) Clear(key string) { delete(f.destinations, key) }

type fakeCartSvc struct {
	carts map[string]*models.ResponseCart
}

func (f *fakeCartSvc) CreateCart(*cart.CreateCartRequest) *types.Response { return nil }

func (f *fakeCartSvc) GetCart(string) *types.Response { return nil }

func (f *fakeCartSvc) AddItem(string, *cart.PurchaseRequest) *types.Response { return nil }

func (f *fakeCartSvc) RemoveItem(string, string) *types.Response { return nil }

func (f *fakeCartSvc) ApplyCoupon(string, string) *types.Response { return nil }

func (f *fakeCartSvc) RemoveCoupon(string) *types.Response { return nil }

func (f *fakeCartSvc) UpdateLocation(string, *cart.UpdateLocationRequest) *types.Response { return nil }

func (f *fakeCartSvc) GetResponseCart(_ context.Context, cartKey string) (*models.ResponseCart, error) {
	rc, ok := f.carts[cartKey]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rc, nil
}

func (f *fakeCartSvc) PushTaxLocation(_ context.Context, _ string, _ models.TaxLocation) (*models.ResponseCart, error) {
	return nil, nil
}

func (f *fakeCartSvc) DestroyCart(_ context.Context, cartKey string) error {
	delete(f.carts, cartKey)
	return nil
}

type fakeCheckoutSvc struct {
	session *models.CheckoutSession
	store   *fakeDestStore
}

func (f *fakeCheckoutSvc) StartCheckout(string, string, string) *types.Response { return nil }

func (f *fakeCheckoutSvc) GetSession(string) *types.Response { return nil }

func (f *fakeCheckoutSvc) AdvanceStep(string, string, *checkout.AdvanceStepRequest) *types.Response {
	return nil
}

func (f *fakeCheckoutSvc) ToggleReview(string, bool) *types.Response { return nil }

func (f *fakeCheckoutSvc) ToggleSummary(string, bool) *types.Response { return nil }

func (f *fakeCheckoutSvc) SetConsent(string, bool) *types.Response { return nil }

func (f *fakeCheckoutSvc) ListPaymentMethods(string, *checkout.PaymentMethodsRequest) *types.Response {
	return nil
}

func (f *fakeCheckoutSvc) SessionReadyToSubmit(context.Context, string) (*models.CheckoutSession, *types.Response) {
	return f.session, nil
}

func (f *fakeCheckoutSvc) SetFormStatus(_ context.Context, session *models.CheckoutSession, status enum.FormStatusEnum) error {
	session.FormStatus = status
	return nil
}

func (f *fakeCheckoutSvc) CompletePaymentStep(context.Context, *models.CheckoutSession) error {
	return nil
}

func (f *fakeCheckoutSvc) SignupStore() checkout.SignupDestinationStore { return f.store }

type fakeSessionRepo struct{}

func (f *fakeSessionRepo) Create(context.Context, *models.CheckoutSession) error { return nil }

func (f *fakeSessionRepo) FindByCartKey(context.Context, string) (*models.CheckoutSession, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionRepo) Save(context.Context, *models.CheckoutSession) error { return nil }

func (f *fakeSessionRepo) UpdateFields(context.Context, string, map[string]any) error { return nil }

func submitService(repo *fakeTrxRepo, carts *fakeCartSvc, co *fakeCheckoutSvc, secret string) *Service {
	gw := GatewayConfig{BaseURL: "https://gateway.example/pay/", CallbackSecret: secret}
	return &Service{
		ctx:        context.Background(),
		rp:         repository.IRepository{Transaction: repo, Checkout: &fakeSessionRepo{}},
		cart:       carts,
		checkout:   co,
		publisher:  &rabbitmq.Publisher{},
		dispatcher: NewDefaultDispatcher(gw),
		gateway:    gw,
	}
}

func callbackSignature(orderID, status string, receiptID int64, secret string) string {
	sum := sha512.Sum512([]byte(orderID + status + strconv.FormatInt(receiptID, 10) + secret))
	return hex.EncodeToString(sum[:])
}

func TestSubmitPaymentStoredCardRidesCardAllowance(t *testing.T) {
	repo := newFakeTrxRepo()
	carts := &fakeCartSvc{carts: map[string]*models.ResponseCart{
		"cart-1": {
			CartKey:          "cart-1",
			SiteSlug:         "example.com",
			Items:            []models.CartItem{{UUID: "i1", ProductSlug: "personal-bundle", Amount: 2500}},
			TotalCostInteger: 2500,
			// the server allow list names "card", never "existing-card"
			AllowedPaymentMethods: []string{"card", "paypal"},
		},
	}}
	co := &fakeCheckoutSvc{
		session: &models.CheckoutSession{ID: "s1", CartKey: "cart-1", FormStatus: enum.FORM_READY},
		store:   &fakeDestStore{destinations: map[string]string{}},
	}

	resp := submitService(repo, carts, co, "s3cret").SubmitPayment("cart-1", "user-1", &SubmitRequest{
		ProcessorID: "existing-card",
		Fields:      map[string]string{"storedCardId": "card-1"},
	})

	require.Equal(t, 200, resp.Code, "%+v", resp)
	data := resp.Data.(map[string]any)
	assert.Equal(t, enum.TRX_COMPLETE, data["transaction_status"])
}

func TestHandleCallbackRejectsBadSignature(t *testing.T) {
	repo := newFakeTrxRepo()
	repo.transactions["ord-1"] = &models.Transaction{OrderID: "ord-1", CartKey: "cart-1", Status: enum.ORDER_PENDING}
	svc := submitService(repo, &fakeCartSvc{carts: map[string]*models.ResponseCart{}}, &fakeCheckoutSvc{
		store: &fakeDestStore{destinations: map[string]string{}},
	}, "s3cret")

	resp := svc.HandleCallback("ord-1", &CallbackRequest{
		Status:    string(enum.ORDER_SUCCESS),
		ReceiptID: 5,
		Signature: "forged",
	})

	assert.Equal(t, 403, resp.Code)
	assert.Equal(t, enum.ORDER_PENDING, repo.transactions["ord-1"].Status)
}

func TestCallbackSettlementUsesUserDestination(t *testing.T) {
	repo := newFakeTrxRepo()
	repo.transactions["ord-2"] = &models.Transaction{
		OrderID:     "ord-2",
		CartKey:     "cart-2",
		UserID:      "user-1",
		ProcessorID: "wechat",
		Status:      enum.ORDER_PENDING,
	}
	carts := &fakeCartSvc{carts: map[string]*models.ResponseCart{
		"cart-2": {CartKey: "cart-2"},
	}}
	co := &fakeCheckoutSvc{
		store: &fakeDestStore{destinations: map[string]string{"user-1": "https://example.blog/welcome"}},
	}
	svc := submitService(repo, carts, co, "s3cret")

	resp := svc.HandleCallback("ord-2", &CallbackRequest{
		Status:    string(enum.ORDER_SUCCESS),
		ReceiptID: 5,
		Signature: callbackSignature("ord-2", string(enum.ORDER_SUCCESS), 5, "s3cret"),
	})

	require.Equal(t, 200, resp.Code, "%+v", resp)
	settled := repo.transactions["ord-2"]
	assert.Equal(t, enum.ORDER_SUCCESS, settled.Status)
	// the signup destination is keyed by user, not by cart
	assert.Equal(t, "https://example.blog/welcome", settled.RedirectURL)
}
