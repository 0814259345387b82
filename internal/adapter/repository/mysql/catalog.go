package mysql

import (
	"context"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/catalog"
	"microcredx-backend/pkg/id"

	"gorm.io/gorm"
)

type CatalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) List(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	q := r.db.WithContext(ctx).Model(&catalog.Product{})
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}
	if f.ShowOnHome {
		q = q.Where("show_on_home = ?", true)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	out := []catalog.Product{}
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, wrapError(err, "list products")
	}
	return out, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	if !validID(productID) {
		return nil, apperr.ErrNotFound
	}
	var out catalog.Product
	if err := r.db.WithContext(ctx).Where("id = ?", productID).First(&out).Error; err != nil {
		return nil, wrapError(err, "get product")
	}
	return &out, nil
}

func (r *CatalogRepository) Create(ctx context.Context, p *catalog.Product) error {
	p.ID = id.NewID32()
	return wrapError(r.db.WithContext(ctx).Create(p).Error, "create product")
}

func (r *CatalogRepository) Update(ctx context.Context, productID string, p catalog.Patch) (int64, error) {
	if !validID(productID) {
		return 0, apperr.ErrNotFound
	}
	_, modified, err := updateExisting(ctx, r.db, &catalog.Product{}, patchColumns(p), "id = ?", productID)
	if err != nil {
		return 0, wrapError(err, "update product")
	}
	return modified, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, productID string) (int64, error) {
	if !validID(productID) {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id = ?", productID).Delete(&catalog.Product{})
	if res.Error != nil {
		return 0, wrapError(res.Error, "delete product")
	}
	return res.RowsAffected, nil
}

func patchColumns(p catalog.Patch) map[string]any {
	out := map[string]any{"updated_at": p.UpdatedAt}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Image != nil {
		out["image"] = *p.Image
	}
	if p.ShortDesc != nil {
		out["short_desc"] = *p.ShortDesc
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Category != nil {
		out["category"] = *p.Category
	}
	if p.InterestRate != nil {
		out["interest_rate"] = *p.InterestRate
	}
	if p.MaxLimit != nil {
		out["max_limit"] = *p.MaxLimit
	}
	if p.EMIPlans != nil {
		out["emi_plans"] = *p.EMIPlans
	}
	if p.ShowOnHome != nil {
		out["show_on_home"] = *p.ShowOnHome
	}
	return out
}
