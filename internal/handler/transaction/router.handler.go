package transaction

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	transactions := e.Group("/v1/transactions")

	transactions.POST("/:cart_key/submit", h.SubmitPayment)
	transactions.GET("/orders/:order_id", h.GetOrderStatus)
	transactions.GET("/orders/:order_id/wait", h.WaitOrderStatus)
	transactions.POST("/orders/:order_id/callback", h.Callback)
}
