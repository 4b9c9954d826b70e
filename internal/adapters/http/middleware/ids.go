// Package middleware holds the gin middleware of the proverb API: request
// and correlation ids, CORS, recovery, access logging, timeouts and
// gateway-header authorization.
package middleware

import (
	"context"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID follows a business transaction across services.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key of the request id.
	ContextKeyRequestID = logging.KeyRequestID

	// ContextKeyCorrelationID is the gin.Context key of the correlation id.
	ContextKeyCorrelationID = logging.KeyCorrelationID

	// maxIDLength caps client-supplied ids; longer values are replaced.
	maxIDLength = 128

	unknownID = "unknown"
)

// idMiddlewareConfig configures one id header.
type idMiddlewareConfig struct {
	headerName      string
	contextKey      string
	contextEnricher func(ctx context.Context, id string) context.Context
}

// RequestID reuses the caller's X-Request-ID or generates a UUID. The id is
// echoed in the response, kept on the gin.Context and added to the request
// logger.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderRequestID,
		contextKey:      ContextKeyRequestID,
		contextEnricher: logging.Enricher(logging.KeyRequestID),
	})
}

// CorrelationID does the same for X-Correlation-ID. A generated id marks
// this request as the start of the transaction.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderCorrelationID,
		contextKey:      ContextKeyCorrelationID,
		contextEnricher: logging.Enricher(logging.KeyCorrelationID),
	})
}

// GetRequestID returns the request id, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}

// MustGetRequestID returns the request id, or "unknown".
func MustGetRequestID(c *gin.Context) string {
	return orUnknown(GetRequestID(c))
}

// GetCorrelationID returns the correlation id, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}

// MustGetCorrelationID returns the correlation id, or "unknown".
func MustGetCorrelationID(c *gin.Context) string {
	return orUnknown(GetCorrelationID(c))
}

func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(cfg.contextKey, id)
		c.Header(cfg.headerName, id)

		if cfg.contextEnricher != nil {
			c.Request = c.Request.WithContext(cfg.contextEnricher(c.Request.Context(), id))
		}

		c.Next()
	}
}

// acceptableID rejects empty, oversized or non-printable ids so they never
// reach logs or response headers.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for _, r := range id {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}

func getIDFromContext(c *gin.Context, key string) string {
	if s, ok := c.Get(key); ok {
		if id, ok := s.(string); ok {
			return id
		}
	}

	return ""
}

func orUnknown(id string) string {
	if id == "" {
		return unknownID
	}

	return id
}
