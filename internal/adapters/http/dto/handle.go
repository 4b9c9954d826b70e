package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/proverb-service/internal/domain"
	"github.com/jsamuelsen/proverb-service/internal/platform/logging"
)

const (
	// ContextKeyTraceID overrides the trace id reported in error envelopes.
	ContextKeyTraceID = "trace_id"

	// ContextKeyExposeErrors marks requests whose 500 responses may carry the
	// underlying (redacted) error message. Set by ExposeErrors.
	ContextKeyExposeErrors = "expose_errors"

	headerRequestID = "X-Request-ID"
)

// genericInternalMessage replaces internal error text when it must not be shown.
const genericInternalMessage = "an internal error occurred"

// ExposeErrors returns middleware that decides, per deployment, whether 500
// responses include the underlying error message.
func ExposeErrors(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyExposeErrors, expose)
		c.Next()
	}
}

// GetTraceID returns the id to report with an error: an explicit trace_id
// context value, then the active span's trace id, then the request id (as
// sent by the caller or as assigned by the request id middleware).
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if id := c.GetHeader(headerRequestID); id != "" {
		return id
	}

	return c.Writer.Header().Get(headerRequestID)
}

// MapError maps an error to a status code and envelope. Messages of
// persistence and unknown errors are only included when expose is true.
func MapError(err error, expose bool) (int, *ErrorResponse) {
	switch {
	case errors.Is(err, ErrBinding):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, "request could not be parsed")

	case IsValidationError(err):
		return http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation, "request validation failed", ValidationErrors(err))

	case domain.IsValidation(err):
		return http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation, validationSummary(err), domain.ValidationDetails(err))

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, notFoundMessage(err))

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsPersistence(err):
		msg := genericInternalMessage
		if expose {
			msg = domain.RedactCredentials(err.Error())
		}

		return http.StatusInternalServerError, NewErrorResponse(ErrorCodePersistence, msg)

	default:
		msg := genericInternalMessage
		if expose {
			msg = domain.RedactCredentials(err.Error())
		}

		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, msg)
	}
}

// HandleError writes the error envelope for err. Server errors are logged
// with the full error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err, c.GetBool(ContextKeyExposeErrors))
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"status", status,
			"trace_id", resp.TraceID,
		)
	}

	c.AbortWithStatusJSON(status, resp)
}

// AbortWithCode aborts the chain with an envelope built from code.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code),
		NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// validationSummary uses a lone validation error's own text and a generic
// summary when several fields failed.
func validationSummary(err error) string {
	if len(domain.ValidationDetails(err)) == 1 {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return ve.Error()
		}
	}

	return "request validation failed"
}

// notFoundMessage strips application-layer wrapping from a not found error.
func notFoundMessage(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}

	return err.Error()
}
