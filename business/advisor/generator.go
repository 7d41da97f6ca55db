package advisor

import (
	"fmt"
	"math"
	"smelterAdvisor/domain"
	"sort"
)

// Generate turns a Cu % reading into ranked, range-clamped parameter adjustments.
// It returns an empty list while the reading stays inside the dead band.
func Generate(current float64, cfg Config, features domain.FeatureSet) ([]domain.Recommendation, error) {
	if !isFinite(current) {
		return nil, fmt.Errorf("%w: current metric %v", ErrInternalComputation, current)
	}

	recs := make([]domain.Recommendation, 0, len(cfg.Parameters))

	deviation := cfg.TargetCu - current
	if math.Abs(deviation) <= cfg.DeadBand {
		return recs, nil
	}

	for _, p := range cfg.adjustable() {
		value, ok := features.Get(p.Name)
		if !ok {
			return nil, &FeatureError{Missing: []string{p.Name}}
		}

		rec, err := recommend(p, value, deviation)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Importance > recs[j].Importance
	})

	return recs, nil
}

func recommend(p domain.ParameterConfig, value, deviation float64) (domain.Recommendation, error) {
	action := domain.ActionDecrease
	sign := -1.0
	if p.Coefficient*deviation > 0 {
		action = domain.ActionIncrease
		sign = 1.0
	}

	recommended := p.Clamp(value + sign*math.Abs(deviation)*p.MagnitudeScale)
	if !isFinite(recommended) {
		return domain.Recommendation{}, fmt.Errorf("%w: %q recommended value %v", ErrInternalComputation, p.Name, recommended)
	}

	return domain.Recommendation{
		Parameter:        p.Name,
		Action:           action,
		CurrentValue:     value,
		RecommendedValue: recommended,
		Change:           math.Abs(recommended - value),
		Importance:       math.Abs(p.Coefficient),
		SafetyLimit:      p.SafetyLimit(),
	}, nil
}
