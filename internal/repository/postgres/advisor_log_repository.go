package postgres

import (
	"context"
	"fmt"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/domain"
	"smelterAdvisor/pkg/logger"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

type AdvisorLogRepository struct {
	DB *gorm.DB
}

var _ advisor.RecommendationLogRepository = (*AdvisorLogRepository)(nil)

func NewAdvisorLogRepository(db *gorm.DB) *AdvisorLogRepository {
	return &AdvisorLogRepository{DB: db}
}

func (r *AdvisorLogRepository) SaveLog(ctx context.Context, log domain.RecommendationLog) error {
	if len(log.RecommendationsRaw) == 0 {
		raw, err := json.Marshal(log.Recommendations)
		if err != nil {
			return fmt.Errorf("marshal recommendations: %w", err)
		}
		log.RecommendationsRaw = raw
	}

	return r.DB.WithContext(ctx).Create(&log).Error
}

func (r *AdvisorLogRepository) ListLogs(ctx context.Context, limit int) ([]domain.RecommendationLog, error) {
	var logs []domain.RecommendationLog

	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	decodeRecommendations(logs)

	return logs, nil
}

// decodeRecommendations fills Recommendations from the raw column. A corrupt row is logged
// and returned with no recommendations.
func decodeRecommendations(logs []domain.RecommendationLog) {
	for i := range logs {
		if len(logs[i].RecommendationsRaw) == 0 {
			continue
		}
		if err := json.Unmarshal(logs[i].RecommendationsRaw, &logs[i].Recommendations); err != nil {
			logger.Warn("Failed to decode stored recommendations", "log_id", logs[i].ID, "error", err)
			logs[i].Recommendations = nil
		}
	}
}
