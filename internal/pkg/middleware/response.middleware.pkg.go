package middleware

import (
	types "storefront-checkout/internal/common/type"
	"storefront-checkout/internal/pkg/helper"
	"storefront-checkout/internal/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/gin-gonic/gin"
)

// RequestInit tags every request with an id for log correlation.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			if gid, err := gonanoid.New(); err == nil {
				requestID = gid
			}
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// ResponseInit injects the `send` function every handler uses to emit the
// uniform response envelope. Errors are logged here, once, with the
// request id, and never leaked raw to the client.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			r = helper.ParseResponse(r)
			if r.Error != nil {
				logger.Error.Printf("[%s] %s: %v", c.GetString("request_id"), r.Message, r.Error)
			}
			c.JSON(r.Code, helper.ToAPI(r))
			c.Abort()
		})
		c.Next()
	}
}
