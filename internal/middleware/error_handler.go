package middleware

import (
	"errors"
	"net/http"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/business/operator"
	"smelterAdvisor/pkg/logger"

	jsonres "smelterAdvisor/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler maps service errors to JSON error envelopes.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := classify(err)
	body = body.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID))

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", body.RequestID,
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}

func classify(err error) (int, jsonres.ErrorBody) {
	var featureErr *advisor.FeatureError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &featureErr):
		return http.StatusBadRequest, jsonres.Error("INVALID_FEATURES", "Invalid or missing features", map[string]any{
			"missing": nonNil(featureErr.Missing),
			"invalid": nonNil(featureErr.Invalid),
		})
	case errors.Is(err, advisor.ErrInvalidFeatures):
		return http.StatusBadRequest, jsonres.Error("INVALID_FEATURES", err.Error(), nil)
	case errors.Is(err, advisor.ErrInvalidParameter):
		return http.StatusBadRequest, jsonres.Error("INVALID_PARAMETER", err.Error(), nil)
	case errors.Is(err, advisor.ErrEstimatorUnavailable):
		return http.StatusServiceUnavailable, jsonres.Error("ESTIMATOR_UNAVAILABLE", "Model not loaded", nil)
	case errors.Is(err, operator.ErrInvalidCredentials):
		return http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, operator.ErrLoginDisabled):
		return http.StatusForbidden, jsonres.Error("FORBIDDEN", err.Error(), nil)
	case errors.Is(err, advisor.ErrInternalComputation):
		return http.StatusInternalServerError, jsonres.Error("INTERNAL_ERROR", "Internal computation error", nil)
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		return httpErr.Code, jsonres.Error(codeForStatus(httpErr.Code), msg, nil)
	default:
		return http.StatusInternalServerError, jsonres.Error("INTERNAL_ERROR", "Internal server error", nil)
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
