package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	// GetByEmail returns apperr.ErrNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Create returns apperr.ErrConflict when the email is already taken.
	Create(ctx context.Context, u *User) error
	// UpdateRole returns apperr.ErrNotFound when id matches nothing.
	UpdateRole(ctx context.Context, id string, role Role) (UpdateResult, error)
}
