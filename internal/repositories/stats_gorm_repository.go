package repositories

import (
	"context"

	"showcase/internal/models"

	"gorm.io/gorm"
)

// GORMStatsRepository is a GORM implementation of StatsRepository.
type GORMStatsRepository struct {
	db *gorm.DB
}

// NewGORMStatsRepository creates a new instance of GORMStatsRepository.
func NewGORMStatsRepository(db *gorm.DB) *GORMStatsRepository {
	return &GORMStatsRepository{
		db: db,
	}
}

// GetStats counts published projects and accounts and sums published views.
func (r *GORMStatsRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	db := r.db.WithContext(ctx)
	var stats models.Stats

	if err := db.Model(&models.Project{}).Where("is_published = ?", true).Count(&stats.TotalProjects).Error; err != nil {
		return nil, translate("count projects", "stats", nil, err)
	}
	if err := db.Model(&models.Account{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, translate("count accounts", "stats", nil, err)
	}
	err := db.Model(&models.Project{}).
		Where("is_published = ?", true).
		Select("COALESCE(SUM(views), 0)").
		Scan(&stats.TotalViews).Error
	if err != nil {
		return nil, translate("sum views", "stats", nil, err)
	}
	return &stats, nil
}
