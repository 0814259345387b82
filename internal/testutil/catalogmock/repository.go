package catalogmock

import (
	"context"

	domain "microcredx-backend/internal/domain/catalog"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListFn    func(ctx context.Context, f domain.Filter) ([]domain.Product, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Product, error)
	CreateFn  func(ctx context.Context, p *domain.Product) error
	UpdateFn  func(ctx context.Context, id string, p domain.Patch) (int64, error)
	DeleteFn  func(ctx context.Context, id string) (int64, error)
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return []domain.Product{}, nil
}
func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) Update(ctx context.Context, id string, p domain.Patch) (int64, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, p)
	}
	return 0, context.Canceled
}
func (m *Repo) Delete(ctx context.Context, id string) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return 0, nil
}
