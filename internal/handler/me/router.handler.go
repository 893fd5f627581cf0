package me

import (
	"storefront-checkout/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	meGroup := e.Group("/v1/me")
	meGroup.Use(middleware.AuthMiddleware())

	meGroup.GET("/domain-contact-information", h.GetDomainContactInformation)
	meGroup.PUT("/domain-contact-information", h.UpdateDomainContactInformation)
}
