package catalog

import "context"

type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	// GetByID returns apperr.ErrNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*Product, error)
	// Create assigns p.ID.
	Create(ctx context.Context, p *Product) error
	// Update returns the number of modified records, or apperr.ErrNotFound when id matches nothing.
	Update(ctx context.Context, id string, p Patch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
