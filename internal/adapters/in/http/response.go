package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Envelope wraps every response body.
type Envelope struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Message: message, Success: true, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Message: message, Error: true})
}

var notFoundMessages = map[string]string{
	"orderId":           "Order not found",
	"user":              "User not found",
	"checkout session":  "Checkout session not found",
	"razorpay_order_id": "Checkout session not found",
}

// customerCauses are validation causes whose text is shown on its own.
var customerCauses = []error{
	commands.ErrInvalidPaymentSignature,
	commands.ErrNoLineItems,
	order.ErrInvalidTrackingStatus,
}

// causeMessage reports the cause of a single invalid or missing field. Known
// customer-facing causes are returned verbatim, others prefixed by the field.
// Joined errors are left to the caller so every field stays listed.
func causeMessage(err error) (string, bool) {
	if _, joined := err.(interface{ Unwrap() []error }); joined {
		return "", false
	}

	var param string
	var cause error
	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	switch {
	case errors.As(err, &invalid) && invalid.Cause != nil:
		param, cause = invalid.ParamName, invalid.Cause
	case errors.As(err, &required) && required.Cause != nil:
		param, cause = required.ParamName, required.Cause
	default:
		return "", false
	}

	for _, known := range customerCauses {
		if errors.Is(cause, known) {
			return known.Error(), true
		}
	}
	return strings.ReplaceAll(param+": "+cause.Error(), "\n", "; "), true
}

// statusOf maps the error taxonomy onto HTTP statuses.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrBusinessRuleViolated):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, ports.ErrPaymentGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, isString := httpErr.Message.(string); isString {
			return msg
		}
		return http.StatusText(httpErr.Code)
	}

	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		if notFound.Cause != nil {
			return notFound.Cause.Error()
		}
		if msg, known := notFoundMessages[notFound.ParamName]; known {
			return msg
		}
	}

	if msg, found := causeMessage(err); found {
		return msg
	}

	var conflict *errs.VersionIsInvalidError
	if errors.As(err, &conflict) {
		return "Order was modified concurrently, reload and retry"
	}

	return strings.ReplaceAll(err.Error(), "\n", "; ")
}

// ErrorHandler renders handler errors as failure envelopes.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		if respErr := fail(c, status, messageOf(err)); respErr != nil {
			logger.ErrorContext(c.Request().Context(), "writing error response", "error", respErr)
		}
	}
}
