package checkout

import (
	"context"
	"net/http"

	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	checkoutService "storefront-checkout/internal/service/checkout"
	contactService "storefront-checkout/internal/service/contact"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx             context.Context
	checkoutService checkoutService.IService
	contactService  contactService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, checkoutSvc checkoutService.IService, contactSvc contactService.IService) IHandler {
	return &Handler{
		ctx:             ctx,
		checkoutService: checkoutSvc,
		contactService:  contactSvc,
	}
}

// userID returns the authenticated user's id, or "" for a logged-out
// cart. Checkout routes accept both.
func userID(c *gin.Context) string {
	if auth, ok := c.Get("auth"); ok {
		if user, ok := auth.(types.UserWithAuth); ok {
			return user.ID.String()
		}
	}
	return ""
}

func (h *Handler) StartCheckout(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.StartCheckout(c.Param("cart_key"), userID(c), c.GetHeader("X-Geo-Country")))
}

func (h *Handler) GetSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.checkoutService.GetSession(c.Param("cart_key")))
}

func (h *Handler) AdvanceStep(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.AdvanceStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.checkoutService.AdvanceStep(c.Param("cart_key"), userID(c), &req))
}

// ValidateContact runs the silent pre-flight contact validation; errors
// come back as data without being attached to the session.
func (h *Handler) ValidateContact(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req contactService.ContactDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.contactService.ValidateContact(c.Param("cart_key"), userID(c), &req, false))
}

type panelRequest struct {
	Open bool `json:"open"`
}

func (h *Handler) ToggleReview(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req panelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.checkoutService.ToggleReview(c.Param("cart_key"), req.Open))
}

func (h *Handler) ToggleSummary(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req panelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.checkoutService.ToggleSummary(c.Param("cart_key"), req.Open))
}

type consentRequest struct {
	Given bool `json:"given"`
}

func (h *Handler) SetConsent(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req consentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.checkoutService.SetConsent(c.Param("cart_key"), req.Given))
}

func (h *Handler) ListPaymentMethods(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req checkoutService.PaymentMethodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.checkoutService.ListPaymentMethods(c.Param("cart_key"), &req))
}
