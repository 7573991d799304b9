package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/give-gateway/internal/api/shared/errors"
	"github.com/feral-file/give-gateway/internal/formhash"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/metrics"
)

const (
	FormIDParam   = "give-form-id"
	FormHashParam = "give-form-hash"
)

// sensitiveQueryParams are replaced before a query string is logged
var sensitiveQueryParams = []string{"authCode", "sharedId", FormHashParam}

// Logger returns a gin middleware for structured logging using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := RedactQuery(c.Request.URL.RawQuery)

		c.Next()

		duration := time.Since(start)

		logger.InfoCtx(c.Request.Context(), "API request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// RedactQuery masks the values of onboarding credentials and form hashes in rawQuery
func RedactQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "REDACTED"
	}

	redacted := false
	for _, key := range sensitiveQueryParams {
		if _, ok := values[key]; ok {
			values.Set(key, "REDACTED")
			redacted = true
		}
	}
	if !redacted {
		return rawQuery
	}
	return values.Encode()
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apierrors.NewInternalError("Internal server error"))
			}
		}()
		c.Next()
	}
}

// Metrics records request counts and latency per matched route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// FormHash admits donor requests that carry a positive give-form-id and a matching give-form-hash
func FormHash(hasher *formhash.Hasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		formID, err := strconv.ParseInt(formValue(c, FormIDParam), 10, 64)
		if err != nil || formID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Missing donation form", FormIDParam+" must be a positive integer"))
			return
		}

		if err := hasher.Check(formID, formValue(c, FormHashParam)); err != nil {
			logger.WarnCtx(c.Request.Context(), "Form hash rejected",
				zap.Int64("form_id", formID),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierrors.NewForbiddenError("Form hash rejected", err.Error()))
			return
		}

		c.Next()
	}
}

// formValue reads key from the posted form first, then the query string
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}
