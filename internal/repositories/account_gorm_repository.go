package repositories

import (
	"context"
	"time"

	"showcase/internal/errs"
	"showcase/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Upsert creates the account on first login and overwrites its profile on later ones.
func (r *GORMAccountRepository) Upsert(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		return errs.NewValidationError("id", "is required")
	}
	account.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(account).Error
	return translate("upsert account", "account", account.ID, err)
}

// GetByID retrieves an account by its ID from the database.
func (r *GORMAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translate("get account by id", "account", id, err)
	}
	return &account, nil
}

// SetAdmin grants or revokes the admin flag.
func (r *GORMAccountRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_admin": isAdmin, "updated_at": time.Now()})
	if res.Error != nil {
		return translate("set admin flag", "account", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("account", id)
	}
	return nil
}
