package mysql

import (
	"context"
	"errors"
	"strings"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/pkg/id"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// validID reports whether rowID can name a row; malformed ids never match.
func validID(rowID string) bool { return id.IsID32(rowID) }

// wrapError maps gorm/driver errors onto apperr kinds.
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	if isDuplicate(err) {
		return pkgerrors.Wrap(apperr.ErrConflict, msg)
	}
	return pkgerrors.Wrap(err, msg)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers opened without TranslateError
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "Duplicate entry") ||
		strings.Contains(s, "Error 1062")
}

// updateExisting applies values to the rows matched by query. It returns
// gorm.ErrRecordNotFound when nothing matches, so callers can tell a missing
// row apart from an update that changed nothing.
func updateExisting(ctx context.Context, db *gorm.DB, model any, values map[string]any, query string, args ...any) (matched, modified int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		res := tx.Model(model).Where(query, args...).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		matched, modified = n, res.RowsAffected
		return nil
	})
	return matched, modified, err
}
