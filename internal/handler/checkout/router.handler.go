package checkout

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	checkout := e.Group("/v1/checkout/:cart_key")

	checkout.POST("", h.StartCheckout)
	checkout.GET("", h.GetSession)
	checkout.POST("/steps/advance", h.AdvanceStep)
	checkout.POST("/contact/validate", h.ValidateContact)
	checkout.PUT("/review", h.ToggleReview)
	checkout.PUT("/summary", h.ToggleSummary)
	checkout.PUT("/consent", h.SetConsent)
	checkout.POST("/payment-methods", h.ListPaymentMethods)
}
