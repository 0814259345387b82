package catalog

import (
	"context"
	"time"

	"microcredx-backend/internal/domain/apperr"
	domain "microcredx-backend/internal/domain/catalog"

	"github.com/pkg/errors"
)

type Usecase struct {
	repo      domain.Repository
	homeLimit int
	now       func() time.Time
}

// NewUsecase builds the catalog usecase. homeLimit caps the home listing; zero
// or negative leaves it unbounded.
func NewUsecase(r domain.Repository, homeLimit int) *Usecase {
	return &Usecase{repo: r, homeLimit: homeLimit, now: now}
}

func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

func (u *Usecase) ListAll(ctx context.Context) ([]domain.Product, error) {
	return u.repo.List(ctx, domain.Filter{})
}

func (u *Usecase) ListHome(ctx context.Context) ([]domain.Product, error) {
	return u.repo.List(ctx, domain.Filter{ShowOnHome: true, Limit: u.homeLimit})
}

func (u *Usecase) ListByCreator(ctx context.Context, email string) ([]domain.Product, error) {
	if email == "" {
		return []domain.Product{}, nil
	}
	return u.repo.List(ctx, domain.Filter{CreatedBy: email})
}

func (u *Usecase) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperr.ErrNotFound
	}
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if in.Title == "" {
		return nil, errors.Wrap(apperr.ErrInvalidArgument, "title is required")
	}
	ts := u.now()
	p := &domain.Product{
		Title:        in.Title,
		Image:        in.Image,
		ShortDesc:    in.ShortDesc,
		Description:  in.Description,
		Category:     in.Category,
		InterestRate: in.InterestRate,
		MaxLimit:     in.MaxLimit,
		EMIPlans:     in.EMIPlans,
		ShowOnHome:   in.ShowOnHome,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if p.EMIPlans == nil {
		p.EMIPlans = domain.EMIPlans{}
	}
	if in.CreatedAt != nil {
		p.CreatedAt = in.CreatedAt.UTC()
	}
	if in.UpdatedAt != nil {
		p.UpdatedAt = in.UpdatedAt.UTC()
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of in and returns the modified count.
func (u *Usecase) Update(ctx context.Context, id string, in UpdateProductInput) (int64, error) {
	if id == "" {
		return 0, apperr.ErrNotFound
	}
	return u.repo.Update(ctx, id, domain.Patch{
		Title:        in.Title,
		Image:        in.Image,
		ShortDesc:    in.ShortDesc,
		Description:  in.Description,
		Category:     in.Category,
		InterestRate: in.InterestRate,
		MaxLimit:     in.MaxLimit,
		EMIPlans:     in.EMIPlans,
		ShowOnHome:   in.ShowOnHome,
		UpdatedAt:    u.now(),
	})
}

// Delete is idempotent: deleting an unknown id reports zero.
func (u *Usecase) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	return u.repo.Delete(ctx, id)
}
