package rest

import (
	"context"
	"net/http"

	jsonres "smelterAdvisor/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	AuthHandler struct {
		validate        *validator.Validate
		operatorService OperatorService
	}

	OperatorService interface {
		Login(ctx context.Context, username, password string) (string, error)
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
)

func NewAuthHandler(svc OperatorService) *AuthHandler {
	return &AuthHandler{
		validate:        validator.New(),
		operatorService: svc,
	}
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	}

	token, err := h.operatorService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(LoginResponse{Token: token, TokenType: "Bearer"}))
}
