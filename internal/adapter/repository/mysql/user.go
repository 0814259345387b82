package mysql

import (
	"context"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/user"
	"microcredx-backend/pkg/id"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	out := []user.User{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, wrapError(err, "list users")
	}
	return out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var out user.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, wrapError(err, "get user")
	}
	return &out, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = id.NewID32()
	return wrapError(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role user.Role) (user.UpdateResult, error) {
	if !validID(userID) {
		return user.UpdateResult{}, apperr.ErrNotFound
	}
	matched, modified, err := updateExisting(ctx, r.db, &user.User{}, map[string]any{"role": role}, "id = ?", userID)
	if err != nil {
		return user.UpdateResult{}, wrapError(err, "update role")
	}
	return user.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}
