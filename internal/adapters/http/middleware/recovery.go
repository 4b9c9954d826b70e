package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/proverb-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
)

// Recovery returns middleware that turns a handler panic into a 500
// INTERNAL_ERROR envelope and logs it with the stack. It must run first.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctxLogger := requestLogger(c, logger)
			traceID := dto.GetTraceID(c)

			ctxLogger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			dto.AbortWithCode(c, dto.ErrorCodeInternal, "an internal error occurred")
		}()

		c.Next()
	}
}

// requestLogger prefers the request-scoped logger, falling back to logger
// when no middleware has stored one.
func requestLogger(c *gin.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.FromContext(c.Request.Context())
	}

	if _, ok := c.Get(ContextKeyRequestID); ok {
		return logging.FromContext(c.Request.Context())
	}

	return logger
}
