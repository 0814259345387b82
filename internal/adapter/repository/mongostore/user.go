package mongostore

import (
	"context"
	"time"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/user"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Role      string        `bson:"role"`
	CreatedAt docTime       `bson:"createdAt"`
}

func (d userDoc) toDomain() user.User {
	return user.User{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, Role: user.Role(d.Role), CreatedAt: time.Time(d.CreatedAt)}
}

type UserRepository struct{ col *mongo.Collection }

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{col: s.col(ColUsers)} }

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	docs, err := findMany[userDoc](ctx, r.col, bson.D{})
	if err != nil {
		return nil, err
	}
	out := make([]user.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	d, err := findOne[userDoc](ctx, r.col, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return nil, err
	}
	u := d.toDomain()
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	d := userDoc{ID: bson.NewObjectID(), Name: u.Name, Email: u.Email, Role: string(u.Role), CreatedAt: docTime(u.CreatedAt)}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return wrapError(err, "insert user")
	}
	u.ID = d.ID.Hex()
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role user.Role) (user.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.UpdateResult{}, apperr.ErrNotFound
	}
	matched, modified, err := updateByID(ctx, r.col, oid, nil, bson.D{{Key: "role", Value: string(role)}})
	if err != nil {
		return user.UpdateResult{}, err
	}
	return user.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}
