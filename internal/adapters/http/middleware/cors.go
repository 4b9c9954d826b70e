package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS response header values. The API is public and carries no cookies.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// corsAllowHeaders lists the request headers browsers may send.
var corsAllowHeaders = strings.Join([]string{
	"Content-Type",
	"Authorization",
	HeaderRequestID,
	HeaderCorrelationID,
}, ", ")

// CORS returns middleware that adds the CORS headers to every response and
// answers preflight OPTIONS requests with 200 and an empty body.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Expose-Headers", "X-Total-Count, X-Next-Cursor, "+HeaderRequestID)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
