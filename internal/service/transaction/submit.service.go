package transaction

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"time"

	"storefront-checkout/internal/common/enum"
	"storefront-checkout/internal/common/models"
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/logger"
	"storefront-checkout/internal/service/checkout"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// SubmitPayment is the shared transaction submission entry point every
// payment method funnels through. It re-checks the step and consent
// gates, touches and validates the method's local form, and only then
// dispatches to the processor. Every outcome terminates in either a
// notice or a redirect; there is no silent failure path.
func (s *Service) SubmitPayment(cartKey string, userID string, req *SubmitRequest) *types.Response {
	session, gateResp := s.checkout.SessionReadyToSubmit(s.ctx, cartKey)
	if gateResp != nil {
		return gateResp
	}

	rc, err := s.cart.GetResponseCart(s.ctx, cartKey)
	if err != nil {
		return &types.Response{Code: http.StatusNotFound, Message: "cart not found", Error: err}
	}
	if len(rc.Items) == 0 {
		return &types.Response{Code: http.StatusPreconditionFailed, Message: "cart is empty"}
	}
	// Stored cards ride on the "card" allowance, mirroring the method
	// registry.
	allowanceID := req.ProcessorID
	if allowanceID == "existing-card" {
		allowanceID = "card"
	}
	if !lo.Contains(rc.AllowedPaymentMethods, allowanceID) {
		return &types.Response{Code: http.StatusForbidden, Message: "payment method not allowed for this cart"}
	}

	processor, err := s.dispatcher.Get(req.ProcessorID)
	if err != nil {
		return &types.Response{Code: http.StatusBadRequest, Message: "unknown payment method", Error: err}
	}

	store := NewFieldStore(processor.FieldSchema())
	for name, value := range req.Fields {
		store.SetField(name, value)
	}
	store.TouchAll()
	if !store.Validate() {
		return &types.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: "payment details invalid",
			Data:    map[string]any{"field_errors": store.FieldErrors()},
		}
	}

	if err := s.checkout.SetFormStatus(s.ctx, session, enum.FORM_SUBMITTING); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to update checkout session", Error: err}
	}

	orderID, err := gonanoid.New()
	if err != nil {
		s.resetForm(session)
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to create order", Error: err}
	}

	data := &TransactionData{
		OrderID:      orderID,
		CartKey:      cartKey,
		UserID:       userID,
		CustomerName: req.CustomerName,
		Email:        req.CustomerEmail,
		Fields:       store.Values(),
		Items:        rc.Items,
		TotalInteger: rc.TotalCostInteger,
		SuccessURL:   "/checkout/" + cartKey + "/pending/" + orderID,
		CancelURL:    "/checkout/" + cartKey,
	}

	result, err := processor.Submit(s.ctx, data)
	if err != nil {
		s.resetForm(session)
		logger.Error.Printf("processor %s failed for order %s: %v", req.ProcessorID, orderID, err)
		return &types.Response{
			Code:    http.StatusBadGateway,
			Message: "payment could not be processed",
			Error:   err,
			Data:    types.Notice{Kind: "error", Message: "We could not process your payment. Please try again."},
		}
	}

	trx, resp := s.recordTransaction(orderID, cartKey, req, data, result)
	if resp != nil {
		s.resetForm(session)
		return resp
	}

	switch result.Type {
	case enum.PROCESSOR_COMPLETE:
		return s.finishComplete(session, rc, trx, result, req, userID)
	case enum.PROCESSOR_REDIRECT:
		s.resetForm(session)
		s.publisher.TryPublish("checkout.payment_redirected", map[string]any{
			"order_id":     orderID,
			"processor_id": req.ProcessorID,
		})
		return &types.Response{
			Code:    http.StatusOK,
			Message: "redirect required",
			Data: map[string]any{
				"transaction_status": enum.TRX_REDIRECTING,
				"order_id":           orderID,
				"redirect_url":       result.RedirectURL,
			},
		}
	case enum.PROCESSOR_MANUAL:
		s.resetForm(session)
		return &types.Response{
			Code:    http.StatusOK,
			Message: "manual follow-up required",
			Data: map[string]any{
				"transaction_status": enum.TRX_PENDING,
				"order_id":           orderID,
				"payload":            result.Payload,
			},
		}
	}

	s.resetForm(session)
	return &types.Response{Code: http.StatusInternalServerError, Message: "unexpected processor response"}
}

func (s *Service) recordTransaction(orderID, cartKey string, req *SubmitRequest, data *TransactionData, result *ProcessorResponse) (*models.Transaction, *types.Response) {
	items, err := models.JSONBFrom(data.Items)
	if err != nil {
		return nil, &types.Response{Code: http.StatusInternalServerError, Message: "failed to record transaction", Error: err}
	}

	trx := &models.Transaction{
		OrderID:       orderID,
		CartKey:       cartKey,
		UserID:        data.UserID,
		ProcessorID:   req.ProcessorID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		GrossAmount:   data.TotalInteger,
		Items:         items,
		ResponseType:  result.Type,
		RedirectURL:   result.RedirectURL,
		Status:        enum.ORDER_PENDING,
	}
	if result.Type == enum.PROCESSOR_MANUAL {
		payload, err := models.JSONBFrom(result.Payload)
		if err != nil {
			return nil, &types.Response{Code: http.StatusInternalServerError, Message: "failed to record transaction", Error: err}
		}
		trx.ManualPayload = payload
	}
	if err := s.rp.Transaction.Create(s.ctx, trx); err != nil {
		return nil, &types.Response{Code: http.StatusInternalServerError, Message: "failed to record transaction", Error: err}
	}
	return trx, nil
}

// finishComplete closes out a synchronously completed charge: resolve
// the thank-you destination while the cart still exists, then tear the
// cart down and seal the session.
func (s *Service) finishComplete(session *models.CheckoutSession, rc *models.ResponseCart, trx *models.Transaction, result *ProcessorResponse, req *SubmitRequest, userID string) *types.Response {
	receiptID := result.ReceiptID
	if receiptID == 0 {
		receiptID = nextReceiptID()
	}
	now := time.Now()

	thankYou := checkout.ResolveThankYouURL(s.checkout.SignupStore(), checkout.ResolveParams{
		Cart:               rc,
		SiteSlug:           rc.SiteSlug,
		RedirectTo:         req.RedirectTo,
		ReceiptID:          formatReceiptID(receiptID),
		Feature:            req.Feature,
		IsJetpackNotAtomic: req.IsJetpackNotAtomic,
		IsAtomicSite:       req.IsAtomicSite,
		DestinationKey:     destinationKey(userID, rc.CartKey),
		HideNudge:          req.HideNudge,
		InNudgeBucket:      inNudgeBucket(destinationKey(userID, rc.CartKey)),
	})

	updates := map[string]any{
		"status":       enum.ORDER_SUCCESS,
		"receipt_id":   receiptID,
		"paid_at":      &now,
		"redirect_url": thankYou,
	}
	if err := s.rp.Transaction.UpdateStatus(s.ctx, trx.OrderID, updates); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to finalize transaction", Error: err}
	}

	if err := s.checkout.CompletePaymentStep(s.ctx, session); err != nil {
		logger.Error.Printf("complete payment step for session %s: %v", session.ID, err)
	}
	if err := s.checkout.SetFormStatus(s.ctx, session, enum.FORM_COMPLETE); err != nil {
		logger.Error.Printf("seal session %s: %v", session.ID, err)
	}
	if err := s.cart.DestroyCart(s.ctx, rc.CartKey); err != nil {
		logger.Error.Printf("destroy cart %s after payment: %v", rc.CartKey, err)
	}

	s.publisher.TryPublish("checkout.payment_completed", map[string]any{
		"order_id":     trx.OrderID,
		"processor_id": trx.ProcessorID,
		"receipt_id":   receiptID,
		"amount":       trx.GrossAmount,
	})

	return &types.Response{
		Code:    http.StatusOK,
		Message: "payment complete",
		Data: map[string]any{
			"transaction_status": enum.TRX_COMPLETE,
			"order_id":           trx.OrderID,
			"receipt_id":         receiptID,
			"thank_you_url":      thankYou,
		},
	}
}

// GetOrderStatus serves the polled order-transaction status. Failure
// statuses reset the checkout so the buyer lands back on the form with a
// persisted error notice; success hands out the stored thank-you URL.
func (s *Service) GetOrderStatus(orderID string) *types.Response {
	trx, err := s.rp.Transaction.FindByOrderID(s.ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.Response{Code: http.StatusNotFound, Message: "order not found", Error: err}
		}
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to load order", Error: err}
	}

	data := map[string]any{
		"order_id": trx.OrderID,
		"status":   trx.Status,
	}

	switch {
	case trx.Status == enum.ORDER_SUCCESS:
		data["receipt_id"] = trx.ReceiptID
		data["redirect_url"] = trx.RedirectURL
	case trx.Status.ShouldResetTransaction():
		s.resetSessionForRetry(trx.CartKey)
		data["redirect_url"] = "/checkout/" + trx.CartKey
		data["notice"] = types.Notice{
			Kind:    "error",
			Message: "Your payment was not completed. Please try again.",
			Persist: true,
		}
	}

	return &types.Response{Code: http.StatusOK, Message: "order status", Data: data}
}

// HandleCallback applies the payment network's confirmation for a
// pending redirect or manual order.
func (s *Service) HandleCallback(orderID string, req *CallbackRequest) *types.Response {
	if !verifyCallbackSignature(orderID, req.Status, req.ReceiptID, s.gateway.CallbackSecret, req.Signature) {
		logger.Error.Printf("invalid callback signature for order %s", orderID)
		return &types.Response{Code: http.StatusForbidden, Message: "invalid callback signature"}
	}

	status := enum.OrderStatusEnum(req.Status)
	if !status.IsValid() {
		return &types.Response{Code: http.StatusBadRequest, Message: "unknown order status: " + req.Status}
	}

	trx, err := s.rp.Transaction.FindByOrderID(s.ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.Response{Code: http.StatusNotFound, Message: "order not found", Error: err}
		}
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to load order", Error: err}
	}
	if trx.Status.IsTerminal() {
		return &types.Response{Code: http.StatusConflict, Message: "order already settled"}
	}

	if status == enum.ORDER_SUCCESS {
		return s.settleFromCallback(trx, req)
	}

	if err := s.rp.Transaction.UpdateStatus(s.ctx, orderID, map[string]any{"status": status}); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to update order", Error: err}
	}
	if status.ShouldResetTransaction() {
		s.resetSessionForRetry(trx.CartKey)
		s.publisher.TryPublish("checkout.payment_failed", map[string]any{
			"order_id": orderID,
			"status":   status,
		})
	}
	return &types.Response{Code: http.StatusOK, Message: "order updated"}
}

func (s *Service) settleFromCallback(trx *models.Transaction, req *CallbackRequest) *types.Response {
	receiptID := req.ReceiptID
	if receiptID == 0 {
		receiptID = nextReceiptID()
	}
	now := time.Now()

	thankYou := "/checkout/thank-you/no-site"
	rc, err := s.cart.GetResponseCart(s.ctx, trx.CartKey)
	if err == nil {
		key := destinationKey(trx.UserID, trx.CartKey)
		thankYou = checkout.ResolveThankYouURL(s.checkout.SignupStore(), checkout.ResolveParams{
			Cart:           rc,
			SiteSlug:       rc.SiteSlug,
			ReceiptID:      formatReceiptID(receiptID),
			DestinationKey: key,
			InNudgeBucket:  inNudgeBucket(key),
		})
	}

	updates := map[string]any{
		"status":       enum.ORDER_SUCCESS,
		"receipt_id":   receiptID,
		"paid_at":      &now,
		"redirect_url": thankYou,
	}
	if err := s.rp.Transaction.UpdateStatus(s.ctx, trx.OrderID, updates); err != nil {
		return &types.Response{Code: http.StatusInternalServerError, Message: "failed to finalize order", Error: err}
	}

	if session, err := s.rp.Checkout.FindByCartKey(s.ctx, trx.CartKey); err == nil {
		if err := s.checkout.CompletePaymentStep(s.ctx, session); err != nil {
			logger.Error.Printf("complete payment step for session %s: %v", session.ID, err)
		}
		if err := s.checkout.SetFormStatus(s.ctx, session, enum.FORM_COMPLETE); err != nil {
			logger.Error.Printf("seal session %s: %v", session.ID, err)
		}
	}
	if err := s.cart.DestroyCart(s.ctx, trx.CartKey); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error.Printf("destroy cart %s after callback: %v", trx.CartKey, err)
	}

	s.publisher.TryPublish("checkout.payment_completed", map[string]any{
		"order_id":     trx.OrderID,
		"processor_id": trx.ProcessorID,
		"receipt_id":   receiptID,
		"amount":       trx.GrossAmount,
	})
	return &types.Response{Code: http.StatusOK, Message: "order settled"}
}

// resetSessionForRetry reopens the form after a failed payment so the
// buyer can try another method.
func (s *Service) resetSessionForRetry(cartKey string) {
	session, err := s.rp.Checkout.FindByCartKey(s.ctx, cartKey)
	if err != nil {
		return
	}
	s.resetForm(session)
}

func (s *Service) resetForm(session *models.CheckoutSession) {
	if err := s.checkout.SetFormStatus(s.ctx, session, enum.FORM_READY); err != nil {
		logger.Error.Printf("reset form status for session %s: %v", session.ID, err)
	}
}

func verifyCallbackSignature(orderID, status string, receiptID int64, secret, signature string) bool {
	input := orderID + status + strconv.FormatInt(receiptID, 10) + secret
	sum := sha512.Sum512([]byte(input))
	return hex.EncodeToString(sum[:]) == signature
}

func destinationKey(userID, cartKey string) string {
	if userID != "" {
		return userID
	}
	return cartKey
}

// inNudgeBucket deterministically assigns the concierge upsell
// experiment bucket from the destination key.
func inNudgeBucket(key string) bool {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()%2 == 0
}

func formatReceiptID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
