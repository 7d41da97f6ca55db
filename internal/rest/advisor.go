package rest

import (
	"context"
	"net/http"
	"smelterAdvisor/domain"

	jsonres "smelterAdvisor/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	HeaderSessionID     = "X-Session-Id"
	defaultHistoryLimit = 50
)

type (
	AdvisorHandler struct {
		validate       *validator.Validate
		advisorService AdvisorService
	}

	AdvisorService interface {
		Predict(ctx context.Context, session string, raw map[string]any) (domain.PredictResult, error)
		Recommend(ctx context.Context, session string, raw map[string]any) (domain.RecommendResult, error)
		AdjustmentCount(ctx context.Context, session string) (int, error)
		History(ctx context.Context, limit int) ([]domain.RecommendationLog, error)
	}

	HistoryQuery struct {
		Limit int `query:"limit" validate:"omitempty,min=1,max=1000"`
	}

	StateResponse struct {
		Session         string `json:"session"`
		AdjustmentCount int    `json:"adjustment_count"`
	}
)

func NewAdvisorHandler(svc AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		validate:       validator.New(),
		advisorService: svc,
	}
}

func sessionID(c echo.Context) string {
	return c.Request().Header.Get(HeaderSessionID)
}

func bindFeatures(c echo.Context) (map[string]any, error) {
	raw := map[string]any{}
	if err := c.Bind(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// POST /api/v1/predict
func (h *AdvisorHandler) Predict(c echo.Context) error {
	raw, err := bindFeatures(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "Request body must be a JSON object", nil))
	}

	res, err := h.advisorService.Predict(c.Request().Context(), sessionID(c), raw)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

// POST /api/v1/recommend
func (h *AdvisorHandler) Recommend(c echo.Context) error {
	raw, err := bindFeatures(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "Request body must be a JSON object", nil))
	}
	if len(raw) == 0 {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "No data provided", nil))
	}

	res, err := h.advisorService.Recommend(c.Request().Context(), sessionID(c), raw)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

// GET /api/v1/state
func (h *AdvisorHandler) State(c echo.Context) error {
	session := sessionID(c)

	count, err := h.advisorService.AdjustmentCount(c.Request().Context(), session)
	if err != nil {
		return err
	}

	if session == "" {
		session = "default"
	}

	return c.JSON(http.StatusOK, StateResponse{Session: session, AdjustmentCount: count})
}

// GET /api/v1/recommendations/history?limit=50
func (h *AdvisorHandler) History(c echo.Context) error {
	var q HistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", err.Error(), nil))
	}
	if q.Limit <= 0 {
		q.Limit = defaultHistoryLimit
	}

	logs, err := h.advisorService.History(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, logs)
}
