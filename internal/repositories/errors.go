package repositories

import (
	"errors"

	"gorm.io/gorm"

	"storefront/pkg/apperrors"
	"storefront/pkg/database"
)

// classify maps not-found and unique-violation driver errors onto application
// errors. It returns nil for anything else so the caller can wrap it.
func classify(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case notFoundMsg != "" && errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, err, notFoundMsg)
	case conflictMsg != "" && database.IsUniqueViolation(err):
		return apperrors.Wrap(apperrors.CodeConflict, err, conflictMsg)
	}
	return nil
}

// classifyReference maps a foreign key failure onto code. It returns nil for
// anything else.
func classifyReference(err error, code apperrors.Code, message string) error {
	if database.IsForeignKeyViolation(err) {
		return apperrors.Wrap(code, err, message)
	}
	return nil
}
