package advisor

import (
	"encoding/json"
	"smelterAdvisor/domain"
	"strconv"
	"strings"
)

// ParseFeatures validates the required names in a raw payload and returns them in that order.
// Numeric strings are accepted. Fields that are not required are ignored.
func ParseFeatures(raw map[string]any, required []string) (domain.FeatureSet, error) {
	var (
		fs      domain.FeatureSet
		missing []string
		invalid []string
	)

	for _, name := range required {
		v, ok := raw[name]
		if !ok || v == nil {
			missing = append(missing, name)
			continue
		}

		f, ok := toFloat(v)
		if !ok || !isFinite(f) {
			invalid = append(invalid, name)
			continue
		}

		fs.Set(name, f)
	}

	if len(missing) > 0 || len(invalid) > 0 {
		return domain.FeatureSet{}, &FeatureError{Missing: missing, Invalid: invalid}
	}

	return fs, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// requiredFeatures merges the estimator inputs with the adjustable parameters, without duplicates.
func requiredFeatures(estimator []string, params []domain.ParameterConfig) []string {
	out := make([]string, 0, len(estimator)+len(params))
	seen := make(map[string]bool, cap(out))
	for _, n := range estimator {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, p := range params {
		if !seen[p.Name] {
			seen[p.Name] = true
			out = append(out, p.Name)
		}
	}
	return out
}
