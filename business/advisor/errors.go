package advisor

import (
	"errors"
	"strings"
)

var (
	ErrEstimatorUnavailable = errors.New("estimator unavailable")
	ErrInvalidFeatures      = errors.New("invalid features")
	ErrInternalComputation  = errors.New("internal computation error")
	ErrInvalidParameter     = errors.New("invalid parameter")
)

// FeatureError lists the feature names that were absent or not finite numbers.
type FeatureError struct {
	Missing []string
	Invalid []string
}

func (e *FeatureError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "non-numeric: "+strings.Join(e.Invalid, ", "))
	}
	return ErrInvalidFeatures.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *FeatureError) Unwrap() error {
	return ErrInvalidFeatures
}
