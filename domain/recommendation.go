package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"

	SafetyLimitUnbounded = "unbounded"
)

type Recommendation struct {
	Parameter        string  `json:"parameter"`
	Action           string  `json:"action"`
	CurrentValue     float64 `json:"current_value"`
	RecommendedValue float64 `json:"recommended_value"`
	Change           float64 `json:"change"`
	Importance       float64 `json:"importance"`
	SafetyLimit      string  `json:"safety_limit"`
}

type RecommendResult struct {
	CurrentCu       float64          `json:"current_cu"`
	TargetCu        float64          `json:"target_cu"`
	Deviation       float64          `json:"deviation"`
	AdjustmentCount int              `json:"adjustment_count"`
	Estimator       string           `json:"estimator"`
	Recommendations []Recommendation `json:"recommendations"`
}

type PredictResult struct {
	Prediction      float64 `json:"prediction"`
	Source          string  `json:"source"`
	AdjustmentCount int     `json:"adjustment_count"`
}

// RecommendationLog is the audit record written for every recommend call.
type RecommendationLog struct {
	ID              string            `gorm:"column:id;primaryKey" json:"id"`
	SessionID       string            `gorm:"column:session_id;index;not null" json:"session_id"`
	TraceID         string            `gorm:"column:trace_id" json:"trace_id,omitempty"`
	Estimator       string            `gorm:"column:estimator;not null" json:"estimator"`
	AdjustmentCount int               `gorm:"column:adjustment_count" json:"adjustment_count"`
	CurrentCu       float64           `gorm:"column:current_cu" json:"current_cu"`
	TargetCu        float64           `gorm:"column:target_cu" json:"target_cu"`
	Deviation       float64           `gorm:"column:deviation" json:"deviation"`
	Features        datatypes.JSONMap `gorm:"column:features;type:jsonb" json:"features"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	RecommendationsRaw datatypes.JSON   `gorm:"column:recommendations;type:jsonb" json:"-"`
	Recommendations    []Recommendation `gorm:"-" json:"recommendations"`
}

func (RecommendationLog) TableName() string {
	return "advisor_recommendation_logs"
}
