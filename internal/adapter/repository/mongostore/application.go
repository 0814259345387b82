package mongostore

import (
	"context"
	"time"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/application"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type applicationDoc struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"`
	Email                string        `bson:"email"`
	application.Form     `bson:",inline"`
	Status               string  `bson:"status"`
	ApplicationFeeStatus string  `bson:"applicationFeeStatus"`
	CreatedAt            docTime `bson:"createdAt"`
	UpdatedAt            docTime `bson:"updatedAt"`
}

func (d applicationDoc) toDomain() application.Application {
	a := application.Application{
		ID:                   d.ID.Hex(),
		Email:                d.Email,
		Form:                 d.Form,
		Status:               application.Status(d.Status),
		ApplicationFeeStatus: application.FeeStatus(d.ApplicationFeeStatus),
		CreatedAt:            time.Time(d.CreatedAt),
		UpdatedAt:            time.Time(d.UpdatedAt),
	}
	if a.Status == application.StatusPending {
		email := d.Email
		a.ActiveEmail = &email
	}
	return a
}

type ApplicationRepository struct{ col *mongo.Collection }

func NewApplicationRepository(s *Store) *ApplicationRepository {
	return &ApplicationRepository{col: s.col(ColApplications)}
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.D) ([]application.Application, error) {
	docs, err := findMany[applicationDoc](ctx, r.col, filter)
	if err != nil {
		return nil, err
	}
	out := make([]application.Application, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, status application.Status, email string) ([]application.Application, error) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: string(status)})
	}
	if email != "" {
		filter = append(filter, bson.E{Key: "email", Value: email})
	}
	return r.list(ctx, filter)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*application.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	d, err := findOne[applicationDoc](ctx, r.col, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, err
	}
	a := d.toDomain()
	return &a, nil
}

func (r *ApplicationRepository) GetActiveByEmail(ctx context.Context, email string) (*application.Application, error) {
	d, err := findOne[applicationDoc](ctx, r.col, bson.D{
		{Key: "email", Value: email},
		{Key: "status", Value: string(application.StatusPending)},
	})
	if err != nil {
		return nil, err
	}
	a := d.toDomain()
	return &a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	d := applicationDoc{
		ID:                   bson.NewObjectID(),
		Email:                a.Email,
		Form:                 a.Form,
		Status:               string(a.Status),
		ApplicationFeeStatus: string(a.ApplicationFeeStatus),
		CreatedAt:            docTime(a.CreatedAt),
		UpdatedAt:            docTime(a.UpdatedAt),
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return wrapError(err, "insert application")
	}
	a.ID = d.ID.Hex()
	return nil
}

func (r *ApplicationRepository) UpdateForm(ctx context.Context, id string, f application.Form, at time.Time) (application.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return application.UpdateResult{}, apperr.ErrNotFound
	}
	set := bson.D{
		{Key: "loanTitle", Value: f.LoanTitle},
		{Key: "interestRate", Value: f.InterestRate},
		{Key: "firstName", Value: f.FirstName},
		{Key: "lastName", Value: f.LastName},
		{Key: "contactNumber", Value: f.ContactNumber},
		{Key: "nationalId", Value: f.NationalID},
		{Key: "incomeSource", Value: f.IncomeSource},
		{Key: "monthlyIncome", Value: f.MonthlyIncome},
		{Key: "loanAmount", Value: f.LoanAmount},
		{Key: "reason", Value: f.Reason},
		{Key: "address", Value: f.Address},
		{Key: "extraNotes", Value: f.ExtraNotes},
		{Key: "updatedAt", Value: at},
	}
	pending := bson.D{{Key: "status", Value: string(application.StatusPending)}}
	matched, modified, err := updateByID(ctx, r.col, oid, pending, set)
	if err != nil {
		return application.UpdateResult{}, err
	}
	return application.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, s application.Status, at time.Time) (application.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return application.UpdateResult{}, apperr.ErrNotFound
	}
	set := bson.D{{Key: "status", Value: string(s)}, {Key: "updatedAt", Value: at}}
	matched, modified, err := updateByID(ctx, r.col, oid, nil, set)
	if err != nil {
		return application.UpdateResult{}, err
	}
	return application.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

func (r *ApplicationRepository) Count(ctx context.Context, status application.Status) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "status", Value: string(status)}})
	if err != nil {
		return 0, wrapError(err, "count applications")
	}
	return n, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) (int64, error) {
	return deleteByID(ctx, r.col, id)
}
