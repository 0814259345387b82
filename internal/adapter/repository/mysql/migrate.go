package mysql

import (
	"fmt"

	"microcredx-backend/internal/domain/application"
	"microcredx-backend/internal/domain/catalog"
	"microcredx-backend/internal/domain/user"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// emailColumns hold unique emails. MySQL's default collation folds case, so
// they are switched to a binary one; sqlite already compares bytes.
var emailColumns = []struct{ table, column string }{
	{"users", "email"},
	{"loan_applications", "email"},
	{"loan_applications", "active_email"},
}

// AutoMigrate creates the tables and the unique indexes the repositories rely on.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&catalog.Product{}, &user.User{}, &application.Application{}); err != nil {
		return pkgerrors.Wrap(err, "auto-migrate")
	}
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	return binaryEmailColumns(db)
}

func binaryEmailColumns(db *gorm.DB) error {
	for _, c := range emailColumns {
		stmt := fmt.Sprintf("ALTER TABLE `%s` MODIFY `%s` VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NULL", c.table, c.column)
		if err := db.Exec(stmt).Error; err != nil {
			return pkgerrors.Wrapf(err, "collate %s.%s", c.table, c.column)
		}
	}
	return nil
}
