package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"factory/internal/pkg/errs"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err))
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{
		Code:      status,
		Message:   message,
		RequestID: ctx.Response().Header().Get(echo.HeaderXRequestID),
	})
}

// ErrorHandler renders errors raised by echo itself (unknown routes, bad bodies) in the
// same shape as domain errors.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if text, ok := httpErr.Message.(string); ok {
				message = text
			}
		} else {
			logger.Error("unhandled error", zap.Error(err))
		}

		if writeErr := ctx.JSON(status, Error{
			Code:      status,
			Message:   message,
			RequestID: ctx.Response().Header().Get(echo.HeaderXRequestID),
		}); writeErr != nil {
			logger.Warn("cannot write error response", zap.Error(writeErr))
		}
	}
}
