package me

import (
	"context"
	"net/http"

	types "storefront-checkout/internal/common/type"
	contactService "storefront-checkout/internal/service/contact"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	contactService contactService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, contactSvc contactService.IService) IHandler {
	return &Handler{
		ctx:            ctx,
		contactService: contactSvc,
	}
}

// GetDomainContactInformation serves the cached contact details for the
// authenticated user, pre-seeding the country from the geo header on a
// first visit.
func (h *Handler) GetDomainContactInformation(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user := c.MustGet("auth").(types.UserWithAuth)
	send(h.contactService.GetDomainContactInformation(user.ID.String(), c.GetHeader("X-Geo-Country")))
}

// UpdateDomainContactInformation replaces the cached contact details.
// The body is the same snake_case field map the GET serves.
func (h *Handler) UpdateDomainContactInformation(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user := c.MustGet("auth").(types.UserWithAuth)

	var wire map[string]string
	if err := c.ShouldBindJSON(&wire); err != nil {
		send(&types.Response{Code: http.StatusBadRequest, Message: "invalid request body", Error: err})
		return
	}
	send(h.contactService.SaveDomainContactInformation(user.ID.String(), wire))
}
