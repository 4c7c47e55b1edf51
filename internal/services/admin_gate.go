package services

import (
	"context"

	"showcase/internal/errs"
	"showcase/internal/repositories"
)

// AdminGate answers whether a caller may mutate the catalog.
type AdminGate struct {
	accounts repositories.AccountRepository
}

// NewAdminGate creates a new AdminGate.
func NewAdminGate(accounts repositories.AccountRepository) *AdminGate {
	return &AdminGate{accounts: accounts}
}

// IsAdmin reads the account's admin flag. An unknown account is simply not an admin.
func (g *AdminGate) IsAdmin(ctx context.Context, accountID string) (bool, error) {
	if accountID == "" {
		return false, nil
	}
	account, err := g.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return account.IsAdmin, nil
}

// Require fails with ErrUnauthenticated for an anonymous caller and
// ErrForbidden for a non-admin one.
func (g *AdminGate) Require(ctx context.Context, accountID string) error {
	if accountID == "" {
		return errs.ErrUnauthenticated
	}
	ok, err := g.IsAdmin(ctx, accountID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrForbidden
	}
	return nil
}
