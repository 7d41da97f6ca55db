package postgres

import (
	"context"
	"smelterAdvisor/business/advisor"
	"smelterAdvisor/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdvisorParameterRepository struct {
	DB *gorm.DB
}

var _ advisor.ParameterRepository = (*AdvisorParameterRepository)(nil)

func NewAdvisorParameterRepository(db *gorm.DB) *AdvisorParameterRepository {
	return &AdvisorParameterRepository{DB: db}
}

func (r *AdvisorParameterRepository) ListParameters(ctx context.Context) ([]domain.ParameterConfig, error) {
	var params []domain.ParameterConfig

	err := r.DB.WithContext(ctx).
		Order("name ASC").
		Find(&params).Error
	if err != nil {
		return nil, err
	}

	return params, nil
}

func (r *AdvisorParameterRepository) UpsertParameter(ctx context.Context, p domain.ParameterConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"unit",
				"coefficient",
				"norm_min",
				"norm_max",
				"magnitude_scale",
				"enabled",
				"updated_at",
			}),
		}).
		Create(&p).Error
}
