package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/give-gateway/internal/api/shared/errors"
	"github.com/feral-file/give-gateway/internal/commerce"
	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/providers/paypal"
)

// Envelope is the body of every PayPal Commerce and Stripe webhook response
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondFailure(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Envelope{Success: false, Data: data})
}

func errorData(v any) gin.H {
	return gin.H{"error": v}
}

// respondCommerceError maps a commerce router error to a failure envelope.
// Order faults carry the decoded remote body so the donation form can show it.
func respondCommerceError(c *gin.Context, operation string, err error) {
	var (
		orderErr *commerce.OrderError
		apiErr   *paypal.APIError
		verrs    validator.ValidationErrors
	)

	switch {
	case errors.As(err, &orderErr):
		logger.WarnCtx(c.Request.Context(), "PayPal order request failed",
			zap.String("operation", operation), zap.Error(err))
		respondFailure(c, http.StatusBadGateway, errorData(orderErr.Body))
	case errors.Is(err, commerce.ErrInvalidOrder), errors.As(err, &verrs):
		respondFailure(c, http.StatusBadRequest, errorData(err.Error()))
	case errors.Is(err, commerce.ErrMerchantNotConnected):
		respondFailure(c, http.StatusConflict, errorData(err.Error()))
	case errors.Is(err, domain.ErrEmptyResponse):
		logger.WarnCtx(c.Request.Context(), "PayPal returned an empty response", zap.String("operation", operation))
		respondFailure(c, http.StatusBadGateway, errorData(err.Error()))
	case errors.As(err, &apiErr):
		logger.WarnCtx(c.Request.Context(), "PayPal request failed",
			zap.String("operation", operation), zap.Int("status", apiErr.StatusCode))
		respondFailure(c, http.StatusBadGateway, errorData(apiErr.Decoded()))
	default:
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", operation))
		respondFailure(c, http.StatusInternalServerError, errorData(err.Error()))
	}
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(details...))
}

func respondForbidden(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusForbidden, apierrors.NewForbiddenError(message, details...))
}

// respondInternalError logs err and responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}
