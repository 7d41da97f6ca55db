package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"smelterAdvisor/domain"

	"github.com/goccy/go-json"
)

// LinearModel is a fitted linear regression exported as JSON:
//
//	{"feature_names": [...], "coefficients": [...], "intercept": 0.0}
type LinearModel struct {
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *LinearModel) Validate() error {
	if len(m.FeatureNames) == 0 {
		return errors.New("model has no features")
	}
	if len(m.FeatureNames) != len(m.Coefficients) {
		return fmt.Errorf("model has %d features but %d coefficients", len(m.FeatureNames), len(m.Coefficients))
	}
	for i, c := range m.Coefficients {
		if !isFinite(c) {
			return fmt.Errorf("coefficient for %q is not finite", m.FeatureNames[i])
		}
	}
	if !isFinite(m.Intercept) {
		return errors.New("intercept is not finite")
	}
	return nil
}

// Predict expects values ordered like FeatureNames.
func (m *LinearModel) Predict(values []float64) float64 {
	y := m.Intercept
	for i, v := range values {
		y += m.Coefficients[i] * v
	}
	return y
}

// ModelEstimator reads Cu % from a fitted model. A nil model makes it unavailable.
type ModelEstimator struct {
	model *LinearModel
}

func NewModelEstimator(model *LinearModel) *ModelEstimator {
	return &ModelEstimator{model: model}
}

func (e *ModelEstimator) Name() string {
	return EstimatorModel
}

func (e *ModelEstimator) Loaded() bool {
	return e.model != nil
}

func (e *ModelEstimator) RequiredFeatures() []string {
	if e.model == nil {
		return append([]string(nil), domain.DefaultRequiredFeatures...)
	}
	return append([]string(nil), e.model.FeatureNames...)
}

func (e *ModelEstimator) Estimate(ctx context.Context, features domain.FeatureSet, _ int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	if e.model == nil {
		return 0, ErrEstimatorUnavailable
	}

	values, missing := features.Ordered(e.model.FeatureNames)
	if len(missing) > 0 {
		return 0, &FeatureError{Missing: missing}
	}

	y := e.model.Predict(values)
	if !isFinite(y) {
		return 0, fmt.Errorf("%w: model produced %v", ErrInternalComputation, y)
	}

	return y, nil
}
