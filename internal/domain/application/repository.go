package application

import (
	"context"
	"time"
)

type Repository interface {
	// List filters by status and email when non-empty.
	List(ctx context.Context, status Status, email string) ([]Application, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	// GetActiveByEmail returns the Pending application for email or apperr.ErrNotFound.
	GetActiveByEmail(ctx context.Context, email string) (*Application, error)
	// Create returns apperr.ErrConflict when email already has a Pending application.
	Create(ctx context.Context, a *Application) error
	// UpdateForm overwrites the form fields of a Pending application.
	UpdateForm(ctx context.Context, id string, f Form, at time.Time) (UpdateResult, error)
	UpdateStatus(ctx context.Context, id string, s Status, at time.Time) (UpdateResult, error)
	Count(ctx context.Context, status Status) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
