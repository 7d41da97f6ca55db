package advisor

import (
	"context"
	"fmt"
	"smelterAdvisor/domain"
)

type Config struct {
	// desired Cu % in the product
	TargetCu float64

	// no recommendations while |target - current| stays within this band
	DeadBand float64

	// adjustment counter saturates here
	MaxAdjustments int

	// ordered parameter table; order breaks importance ties
	Parameters []domain.ParameterConfig
}

const (
	defaultTargetCu       = 62.5
	defaultDeadBand       = 0.5
	defaultMaxAdjustments = 2

	defaultBlastVolumeCoefficient = 0.002
	defaultBlastVolumeMin         = 15000.0
	defaultBlastVolumeMax         = 35000.0
	defaultBlastVolumeScale       = 50.0

	defaultFeederSpeedCoefficient = 0.1
	defaultFeederSpeedMin         = 15.0
	defaultFeederSpeedMax         = 45.0
	defaultFeederSpeedScale       = 2.0
)

func DefaultConfig() Config {
	return Config{
		TargetCu:       defaultTargetCu,
		DeadBand:       defaultDeadBand,
		MaxAdjustments: defaultMaxAdjustments,
		Parameters:     DefaultParameters(),
	}
}

func DefaultParameters() []domain.ParameterConfig {
	return []domain.ParameterConfig{
		{
			Name:           domain.FeatureBlastVolume,
			Unit:           "m3/h",
			Coefficient:    defaultBlastVolumeCoefficient,
			NormMin:        float64Ptr(defaultBlastVolumeMin),
			NormMax:        float64Ptr(defaultBlastVolumeMax),
			MagnitudeScale: defaultBlastVolumeScale,
			Enabled:        true,
		},
		{
			Name:           domain.FeatureFeeder2Speed,
			Coefficient:    defaultFeederSpeedCoefficient,
			NormMin:        float64Ptr(defaultFeederSpeedMin),
			NormMax:        float64Ptr(defaultFeederSpeedMax),
			MagnitudeScale: defaultFeederSpeedScale,
			Enabled:        true,
		},
	}
}

func (c Config) Validate() error {
	if !isFinite(c.TargetCu) {
		return fmt.Errorf("target must be finite, got %v", c.TargetCu)
	}
	if !isFinite(c.DeadBand) || c.DeadBand < 0 {
		return fmt.Errorf("dead band must not be negative, got %v", c.DeadBand)
	}
	if c.MaxAdjustments < 0 {
		return fmt.Errorf("max adjustments must not be negative, got %d", c.MaxAdjustments)
	}

	seen := make(map[string]bool, len(c.Parameters))
	for _, p := range c.Parameters {
		if err := ValidateParameter(p); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate parameter %q", ErrInvalidParameter, p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}

// ValidateParameter checks a single parameter row.
func ValidateParameter(p domain.ParameterConfig) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidParameter)
	}
	if !isFinite(p.Coefficient) {
		return fmt.Errorf("%w: %q coefficient must be finite", ErrInvalidParameter, p.Name)
	}
	if !isFinite(p.MagnitudeScale) || p.MagnitudeScale < 0 {
		return fmt.Errorf("%w: %q magnitude scale must be a non-negative number", ErrInvalidParameter, p.Name)
	}
	for _, bound := range []*float64{p.NormMin, p.NormMax} {
		if bound != nil && !isFinite(*bound) {
			return fmt.Errorf("%w: %q range bounds must be finite", ErrInvalidParameter, p.Name)
		}
	}
	if p.NormMin != nil && p.NormMax != nil && *p.NormMin > *p.NormMax {
		return fmt.Errorf("%w: %q range min %v exceeds max %v", ErrInvalidParameter, p.Name, *p.NormMin, *p.NormMax)
	}
	return nil
}

// adjustable returns the enabled parameters that can produce a recommendation.
func (c Config) adjustable() []domain.ParameterConfig {
	out := make([]domain.ParameterConfig, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		if p.Enabled && p.Coefficient != 0 {
			out = append(out, p)
		}
	}
	return out
}

func float64Ptr(v float64) *float64 {
	return &v
}

// ParameterRepository stores operator overrides of the parameter table.
type ParameterRepository interface {
	ListParameters(ctx context.Context) ([]domain.ParameterConfig, error)
	UpsertParameter(ctx context.Context, p domain.ParameterConfig) error
}

// RecommendationLogRepository keeps the audit trail of recommend calls.
type RecommendationLogRepository interface {
	SaveLog(ctx context.Context, log domain.RecommendationLog) error
	ListLogs(ctx context.Context, limit int) ([]domain.RecommendationLog, error)
}
