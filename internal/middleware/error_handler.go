package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"payment_service_echo/internal/handlers"
	"payment_service_echo/internal/models"
)

// CustomErrorHandler maps service errors onto HTTP statuses:
// NotFoundError -> 404, ValidationError -> 400, anything else -> 500.
// Echo HTTPErrors pass through with their own status.
func CustomErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"
		errorCode := "INTERNAL_SERVER_ERROR"

		var notFound *models.NotFoundError
		var validation *models.ValidationError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &notFound):
			code = http.StatusNotFound
			message = notFound.Error()
			errorCode = "PAYMENT_NOT_FOUND"
		case errors.As(err, &validation):
			code = http.StatusBadRequest
			message = validation.Error()
			errorCode = "VALIDATION_ERROR"
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok && msg != "" {
				message = msg
			} else {
				message = http.StatusText(code)
			}
			errorCode = "HTTP_ERROR"
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed", zap.Int("status", code), zap.Error(err))
		} else {
			logger.Warn("request rejected", zap.Int("status", code), zap.Error(err))
		}

		if writeErr := c.JSON(code, handlers.ErrorResponse(message, errorCode)); writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}
