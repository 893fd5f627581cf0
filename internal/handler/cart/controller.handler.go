package cart

import (
	"context"
	"net/http"

	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	cartService "storefront-checkout/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx         context.Context
	cartService cartService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, cartSvc cartService.IService) IHandler {
	return &Handler{
		ctx:         ctx,
		cartService: cartSvc,
	}
}

func (h *Handler) CreateCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req cartService.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.cartService.CreateCart(&req))
}

func (h *Handler) GetCart(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.cartService.GetCart(c.Param("cart_key")))
}

func (h *Handler) AddItem(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req cartService.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.cartService.AddItem(c.Param("cart_key"), &req))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.cartService.RemoveItem(c.Param("cart_key"), c.Param("item_uuid")))
}

func (h *Handler) ApplyCoupon(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req cartService.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.cartService.ApplyCoupon(c.Param("cart_key"), req.Code))
}

func (h *Handler) RemoveCoupon(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.cartService.RemoveCoupon(c.Param("cart_key")))
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req cartService.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.cartService.UpdateLocation(c.Param("cart_key"), &req))
}
