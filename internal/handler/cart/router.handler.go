package cart

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	carts := e.Group("/v1/carts")

	carts.POST("", h.CreateCart)
	carts.GET("/:cart_key", h.GetCart)
	carts.POST("/:cart_key/items", h.AddItem)
	carts.DELETE("/:cart_key/items/:item_uuid", h.RemoveItem)
	carts.POST("/:cart_key/coupon", h.ApplyCoupon)
	carts.DELETE("/:cart_key/coupon", h.RemoveCoupon)
	carts.PUT("/:cart_key/location", h.UpdateLocation)
}
