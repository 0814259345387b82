package user

import (
	"context"
	"errors"
	"time"

	"microcredx-backend/internal/domain/apperr"
	domain "microcredx-backend/internal/domain/user"

	pkgerrors "github.com/pkg/errors"
)

// PendingCounter reports how many applications await review.
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type Usecase struct {
	repo    domain.Repository
	pending PendingCounter
}

func NewUsecase(r domain.Repository, pending PendingCounter) *Usecase {
	return &Usecase{repo: r, pending: pending}
}

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *Usecase) List(ctx context.Context) ([]domain.User, error) {
	return u.repo.List(ctx)
}

// RegisterOrFetch returns the stored user for in.Email, creating it on first
// sight. Repeat calls never modify the stored record.
func (u *Usecase) RegisterOrFetch(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Email == "" {
		return nil, pkgerrors.Wrap(apperr.ErrInvalidArgument, "email is required")
	}
	existing, err := u.repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	role := domain.RoleBorrower
	if in.Role != "" {
		role = domain.Role(in.Role)
		if !role.Valid() {
			return nil, pkgerrors.Wrapf(apperr.ErrInvalidArgument, "unknown role %q", in.Role)
		}
	}
	nu := &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		Role:      role,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := u.repo.Create(ctx, nu); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			// a concurrent call registered the email first
			return u.repo.GetByEmail(ctx, in.Email)
		}
		return nil, err
	}
	return nu, nil
}

func (u *Usecase) GetRole(ctx context.Context, email string) (domain.Role, error) {
	usr, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return usr.Role, nil
}

func (u *Usecase) SetRole(ctx context.Context, id, role string) (domain.UpdateResult, error) {
	r := domain.Role(role)
	if !r.Valid() {
		return domain.UpdateResult{}, pkgerrors.Wrapf(apperr.ErrInvalidArgument, "unknown role %q", role)
	}
	if id == "" {
		return domain.UpdateResult{}, apperr.ErrNotFound
	}
	return u.repo.UpdateRole(ctx, id, r)
}

func (u *Usecase) CountPending(ctx context.Context) (int64, error) {
	return u.pending.CountPending(ctx)
}
