package repositories

import (
	"context"

	"showcase/internal/errs"
	"showcase/internal/models"

	"gorm.io/gorm"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{
		db: db,
	}
}

// Toggle removes the membership if present, otherwise inserts it. The
// membership change and the counter change commit together or not at all.
// A concurrent insert of the same pair surfaces as errs.ErrConflict.
func (r *GORMLikeRepository) Toggle(ctx context.Context, projectID uint, accountID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("project_id = ? AND account_id = ?", projectID, accountID).Delete(&models.ProjectLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Project{}).
				Where("id = ?", projectID).
				UpdateColumn("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).
				Error
		}

		res = tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			UpdateColumn("likes", gorm.Expr("likes + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("project", projectID)
		}
		if err := tx.Create(&models.ProjectLike{ProjectID: projectID, AccountID: accountID}).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, translate("toggle like", "project", projectID, err)
	}
	return liked, nil
}

// Exists reports whether the account currently likes the project.
func (r *GORMLikeRepository) Exists(ctx context.Context, projectID uint, accountID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectLike{}).
		Where("project_id = ? AND account_id = ?", projectID, accountID).
		Count(&count).Error
	if err != nil {
		return false, translate("check like", "project", projectID, err)
	}
	return count > 0, nil
}
