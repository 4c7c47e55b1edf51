package repositories

import (
	"errors"
	"fmt"

	"showcase/internal/errs"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the errs taxonomy.
func translate(op, entity string, id interface{}, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("failed to %s: %w: %w", op, errs.ErrConflict, err)
	case errs.IsNotFound(err), errs.IsConflict(err):
		return err
	default:
		return errs.Store(op, err)
	}
}
