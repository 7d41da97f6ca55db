package domain

import (
	"strconv"
	"time"
)

// ParameterConfig describes one controllable process parameter.
// Rows stored in the database override the built-in defaults by Name.
type ParameterConfig struct {
	Name           string    `gorm:"column:name;primaryKey" json:"name"`
	Unit           string    `gorm:"column:unit" json:"unit,omitempty"`
	Coefficient    float64   `gorm:"column:coefficient" json:"coefficient"`
	NormMin        *float64  `gorm:"column:norm_min" json:"norm_min,omitempty"`
	NormMax        *float64  `gorm:"column:norm_max" json:"norm_max,omitempty"`
	MagnitudeScale float64   `gorm:"column:magnitude_scale" json:"magnitude_scale"`
	Enabled        bool      `gorm:"column:enabled" json:"enabled"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (ParameterConfig) TableName() string {
	return "advisor_parameters"
}

// Clamp limits v to the normal operating range, where one is defined.
func (p ParameterConfig) Clamp(v float64) float64 {
	if p.NormMin != nil && v < *p.NormMin {
		v = *p.NormMin
	}
	if p.NormMax != nil && v > *p.NormMax {
		v = *p.NormMax
	}
	return v
}

// SafetyLimit renders the range as "min-max", or "unbounded" when either side is missing.
func (p ParameterConfig) SafetyLimit() string {
	if p.NormMin == nil || p.NormMax == nil {
		return SafetyLimitUnbounded
	}
	return strconv.FormatFloat(*p.NormMin, 'f', -1, 64) + "-" + strconv.FormatFloat(*p.NormMax, 'f', -1, 64)
}
