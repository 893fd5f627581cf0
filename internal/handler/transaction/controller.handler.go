package transaction

import (
	"context"
	"net/http"

	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	transactionService "storefront-checkout/internal/service/transaction"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx                context.Context
	transactionService transactionService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, transactionSvc transactionService.IService) IHandler {
	return &Handler{
		ctx:                ctx,
		transactionService: transactionSvc,
	}
}

func userID(c *gin.Context) string {
	if auth, ok := c.Get("auth"); ok {
		if user, ok := auth.(types.UserWithAuth); ok {
			return user.ID.String()
		}
	}
	return ""
}

func (h *Handler) SubmitPayment(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req transactionService.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.transactionService.SubmitPayment(c.Param("cart_key"), userID(c), &req))
}

func (h *Handler) GetOrderStatus(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	orderID := c.Param("order_id")
	if orderID == "" {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "order_id is required",
		}))
		return
	}

	send(h.transactionService.GetOrderStatus(orderID))
}

// WaitOrderStatus long-polls until the order settles. The request
// context carries the cancellation: a client that navigates away stops
// the poll on the next tick.
func (h *Handler) WaitOrderStatus(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	status, err := h.transactionService.PollOrderStatus(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if c.Request.Context().Err() != nil {
			// client gone; nothing to write
			c.Abort()
			return
		}
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusNotFound,
			Message: "order not found",
			Error:   err,
		}))
		return
	}

	send(helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "order settled",
		Data:    map[string]any{"order_id": c.Param("order_id"), "status": status},
	}))
}

// Callback receives the payment network's confirmation webhook.
func (h *Handler) Callback(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req transactionService.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.transactionService.HandleCallback(c.Param("order_id"), &req))
}
