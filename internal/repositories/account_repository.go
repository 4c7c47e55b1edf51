package repositories

import (
	"context"

	"showcase/internal/models"
)

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	// Upsert inserts the account or refreshes its profile fields. The admin
	// flag and creation time of an existing row are left alone.
	Upsert(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}
