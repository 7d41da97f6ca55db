//go:build !integration

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/pkg/utils"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "req-42")

	ErrorHandler(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorHandlerMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"features", &advisor.FeatureError{Missing: []string{"x"}}, http.StatusBadRequest, "INVALID_FEATURES"},
		{"wrapped features", fmt.Errorf("recommend: %w", &advisor.FeatureError{Invalid: []string{"y"}}), http.StatusBadRequest, "INVALID_FEATURES"},
		{"parameter", fmt.Errorf("%w: bad range", advisor.ErrInvalidParameter), http.StatusBadRequest, "INVALID_PARAMETER"},
		{"unavailable", advisor.ErrEstimatorUnavailable, http.StatusServiceUnavailable, "ESTIMATOR_UNAVAILABLE"},
		{"computation", advisor.ErrInternalComputation, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"echo", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, "req-42", body["request_id"])
		})
	}
}

func TestErrorHandlerFeatureDetails(t *testing.T) {
	_, body := serveError(t, &advisor.FeatureError{Missing: []string{"feeder 2, speed"}})

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"feeder 2, speed"}, details["missing"])
	assert.Equal(t, []any{}, details["invalid"])
}

func TestErrorHandlerHidesInternalMessages(t *testing.T) {
	_, body := serveError(t, errors.New("pq: password authentication failed"))
	assert.Equal(t, "Internal server error", body["message"])
}

func runAuth(t *testing.T, header string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("operator").(string))
	}, mws...)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	operatorToken, err := issuer.GenerateJWT("shift-lead", "operator")
	require.NoError(t, err)
	viewerToken, err := issuer.GenerateJWT("guest", "viewer")
	require.NoError(t, err)

	chain := []echo.MiddlewareFunc{AuthMiddleware(issuer), RoleRequired("operator")}

	rec := runAuth(t, "", chain...)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = runAuth(t, "Token abc", chain...)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = runAuth(t, "Bearer garbage", chain...)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = runAuth(t, "Bearer "+viewerToken, chain...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runAuth(t, "Bearer "+operatorToken, chain...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shift-lead", rec.Body.String())
}

func TestRequestIDPropagatesTraceID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, advisor.TraceIDFromContext(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Body.String(), 36)
}
