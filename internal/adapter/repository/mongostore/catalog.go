package mongostore

import (
	"context"
	"time"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/catalog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type productDoc struct {
	ID           bson.ObjectID    `bson:"_id,omitempty"`
	Title        string           `bson:"title"`
	Image        string           `bson:"image"`
	ShortDesc    string           `bson:"shortDesc"`
	Description  string           `bson:"description"`
	Category     string           `bson:"category"`
	InterestRate float64          `bson:"interestRate"`
	MaxLimit     float64          `bson:"maxLimit"`
	EMIPlans     catalog.EMIPlans `bson:"emiPlans"`
	ShowOnHome   bool             `bson:"showOnHome"`
	CreatedBy    string           `bson:"createdBy"`
	CreatedAt    docTime          `bson:"createdAt"`
	UpdatedAt    docTime          `bson:"updatedAt"`
}

func (d productDoc) toDomain() catalog.Product {
	return catalog.Product{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Image:        d.Image,
		ShortDesc:    d.ShortDesc,
		Description:  d.Description,
		Category:     d.Category,
		InterestRate: d.InterestRate,
		MaxLimit:     d.MaxLimit,
		EMIPlans:     d.EMIPlans,
		ShowOnHome:   d.ShowOnHome,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    time.Time(d.CreatedAt),
		UpdatedAt:    time.Time(d.UpdatedAt),
	}
}

type CatalogRepository struct{ col *mongo.Collection }

func NewCatalogRepository(s *Store) *CatalogRepository {
	return &CatalogRepository{col: s.col(ColProducts)}
}

func (r *CatalogRepository) List(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	filter := bson.D{}
	if f.CreatedBy != "" {
		filter = append(filter, bson.E{Key: "createdBy", Value: f.CreatedBy})
	}
	if f.ShowOnHome {
		filter = append(filter, bson.E{Key: "showOnHome", Value: true})
	}
	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	docs, err := findMany[productDoc](ctx, r.col, filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	d, err := findOne[productDoc](ctx, r.col, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}

func (r *CatalogRepository) Create(ctx context.Context, p *catalog.Product) error {
	d := productDoc{
		ID:           bson.NewObjectID(),
		Title:        p.Title,
		Image:        p.Image,
		ShortDesc:    p.ShortDesc,
		Description:  p.Description,
		Category:     p.Category,
		InterestRate: p.InterestRate,
		MaxLimit:     p.MaxLimit,
		EMIPlans:     p.EMIPlans,
		ShowOnHome:   p.ShowOnHome,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    docTime(p.CreatedAt),
		UpdatedAt:    docTime(p.UpdatedAt),
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return wrapError(err, "insert product")
	}
	p.ID = d.ID.Hex()
	return nil
}

func (r *CatalogRepository) Update(ctx context.Context, id string, p catalog.Patch) (int64, error) {
	oid, ok := objectID(id)
	if !ok {
		return 0, apperr.ErrNotFound
	}
	set := bson.D{{Key: "updatedAt", Value: p.UpdatedAt}}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *p.Image})
	}
	if p.ShortDesc != nil {
		set = append(set, bson.E{Key: "shortDesc", Value: *p.ShortDesc})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *p.Category})
	}
	if p.InterestRate != nil {
		set = append(set, bson.E{Key: "interestRate", Value: *p.InterestRate})
	}
	if p.MaxLimit != nil {
		set = append(set, bson.E{Key: "maxLimit", Value: *p.MaxLimit})
	}
	if p.EMIPlans != nil {
		set = append(set, bson.E{Key: "emiPlans", Value: *p.EMIPlans})
	}
	if p.ShowOnHome != nil {
		set = append(set, bson.E{Key: "showOnHome", Value: *p.ShowOnHome})
	}
	_, modified, err := updateByID(ctx, r.col, oid, nil, set)
	return modified, err
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) (int64, error) {
	return deleteByID(ctx, r.col, id)
}
