package applicationmock

import (
	"context"
	"time"

	domain "microcredx-backend/internal/domain/application"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Methods without a func return context.Canceled, except Create which succeeds.
type Repo struct {
	ListFn             func(ctx context.Context, status domain.Status, email string) ([]domain.Application, error)
	GetByIDFn          func(ctx context.Context, id string) (*domain.Application, error)
	GetActiveByEmailFn func(ctx context.Context, email string) (*domain.Application, error)
	CreateFn           func(ctx context.Context, a *domain.Application) error
	UpdateFormFn       func(ctx context.Context, id string, f domain.Form, at time.Time) (domain.UpdateResult, error)
	UpdateStatusFn     func(ctx context.Context, id string, s domain.Status, at time.Time) (domain.UpdateResult, error)
	CountFn            func(ctx context.Context, status domain.Status) (int64, error)
	DeleteFn           func(ctx context.Context, id string) (int64, error)
}

func (m *Repo) List(ctx context.Context, status domain.Status, email string) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status, email)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetActiveByEmail(ctx context.Context, email string) (*domain.Application, error) {
	if m.GetActiveByEmailFn != nil {
		return m.GetActiveByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}
func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *Repo) UpdateForm(ctx context.Context, id string, f domain.Form, at time.Time) (domain.UpdateResult, error) {
	if m.UpdateFormFn != nil {
		return m.UpdateFormFn(ctx, id, f, at)
	}
	return domain.UpdateResult{}, context.Canceled
}
func (m *Repo) UpdateStatus(ctx context.Context, id string, s domain.Status, at time.Time) (domain.UpdateResult, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, s, at)
	}
	return domain.UpdateResult{}, context.Canceled
}
func (m *Repo) Count(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, status)
	}
	return 0, context.Canceled
}
func (m *Repo) Delete(ctx context.Context, id string) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return 0, nil
}
