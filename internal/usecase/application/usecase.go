package application

import (
	"context"
	"errors"
	"time"

	"microcredx-backend/internal/domain/apperr"
	domain "microcredx-backend/internal/domain/application"

	pkgerrors "github.com/pkg/errors"
)

type Usecase struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUsecase(r domain.Repository) *Usecase {
	return &Usecase{repo: r, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}
}

type SubmitInput struct {
	Email string `json:"email"`
	domain.Form
}

type SubmitResult struct {
	Created     bool
	Application *domain.Application
}

func (u *Usecase) ListAll(ctx context.Context) ([]domain.Application, error) {
	return u.repo.List(ctx, "", "")
}

func (u *Usecase) ListByStatus(ctx context.Context, s domain.Status) ([]domain.Application, error) {
	if !s.Valid() {
		return nil, pkgerrors.Wrapf(apperr.ErrInvalidArgument, "unknown status %q", s)
	}
	return u.repo.List(ctx, s, "")
}

func (u *Usecase) ListByEmail(ctx context.Context, email string) ([]domain.Application, error) {
	if email == "" {
		return []domain.Application{}, nil
	}
	return u.repo.List(ctx, "", email)
}

func (u *Usecase) Get(ctx context.Context, id string) (*domain.Application, error) {
	if id == "" {
		return nil, apperr.ErrNotFound
	}
	return u.repo.GetByID(ctx, id)
}

// Submit creates the applicant's Pending application, or overwrites its form
// when one exists. The store rejects a second Pending insert for the same
// email; the loser of that race is retried once as an update.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if in.Email == "" {
		return nil, pkgerrors.Wrap(apperr.ErrInvalidArgument, "email is required")
	}
	at := u.now()

	res, err := u.resubmit(ctx, in, at)
	if err == nil || !errors.Is(err, apperr.ErrNotFound) {
		return res, err
	}

	email := in.Email
	a := &domain.Application{
		Email:                in.Email,
		ActiveEmail:          &email,
		Form:                 in.Form,
		Status:               domain.StatusPending,
		ApplicationFeeStatus: domain.FeeUnpaid,
		CreatedAt:            at,
		UpdatedAt:            at,
	}
	err = u.repo.Create(ctx, a)
	switch {
	case err == nil:
		return &SubmitResult{Created: true, Application: a}, nil
	case !errors.Is(err, apperr.ErrConflict):
		return nil, err
	}

	res, err = u.resubmit(ctx, in, at)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, pkgerrors.Wrap(apperr.ErrConflict, "concurrent submission for "+in.Email)
	}
	return res, err
}

func (u *Usecase) resubmit(ctx context.Context, in SubmitInput, at time.Time) (*SubmitResult, error) {
	active, err := u.repo.GetActiveByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if _, err := u.repo.UpdateForm(ctx, active.ID, in.Form, at); err != nil {
		return nil, err
	}
	active.Form = in.Form
	active.UpdatedAt = at
	return &SubmitResult{Application: active}, nil
}

func (u *Usecase) SetStatus(ctx context.Context, id string, s domain.Status) (domain.UpdateResult, error) {
	if !s.Valid() {
		return domain.UpdateResult{}, pkgerrors.Wrapf(apperr.ErrInvalidArgument, "unknown status %q", s)
	}
	if id == "" {
		return domain.UpdateResult{}, apperr.ErrNotFound
	}
	return u.repo.UpdateStatus(ctx, id, s, u.now())
}

func (u *Usecase) CountPending(ctx context.Context) (int64, error) {
	return u.repo.Count(ctx, domain.StatusPending)
}

func (u *Usecase) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	return u.repo.Delete(ctx, id)
}
