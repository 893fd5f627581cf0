package middleware

import (
	"net/http"
	"strings"

	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	"storefront-checkout/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		send := c.MustGet("send").(func(r *types.Response))
		if token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			return
		}

		c.Set("claims", claims)
		c.Set("auth", types.UserWithAuth{
			ID:      claims.ID,
			Email:   claims.Email,
			IsVerif: claims.IsVerif,
		})
		c.Next()
	}
}
