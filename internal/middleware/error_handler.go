package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/abhishek972986/porter-managment/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// abort writes the failure envelope for err and stops the chain.
func abort(c *gin.Context, err *apierror.Error) {
	c.AbortWithStatusJSON(err.Status, apierror.Fail(err))
}

// toAPIError maps any handler error to a client-safe *apierror.Error.
func toAPIError(err error) *apierror.Error {
	if apiErr, ok := apierror.As(err); ok {
		return apiErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.NotFound("resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.Conflict("resource already exists")
	}
	return apierror.Internal(err)
}

// ErrorHandler renders the last error pushed with c.Error. 5xx details are
// logged and never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		apiErr := toAPIError(err)
		evt := log.Warn()
		if apiErr.Status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Int("status", apiErr.Status).
			Err(err).
			Msg("request failed")

		if c.Writer.Written() {
			return
		}
		abort(c, apiErr)
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				abort(c, apierror.Internal(nil))
			}
		}()
		c.Next()
	}
}

// Logger writes one line per request. Health probes are logged at debug.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		switch {
		case c.Request.URL.Path == "/health":
			evt = log.Debug()
		case status >= http.StatusInternalServerError:
			evt = log.Error()
		}
		evt.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
