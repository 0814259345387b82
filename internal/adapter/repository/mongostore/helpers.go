package mongostore

import (
	"context"
	stderrors "errors"

	"microcredx-backend/internal/domain/apperr"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// wrapError maps driver errors onto apperr kinds.
func wrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrap(apperr.ErrConflict, msg)
	}
	return errors.Wrap(err, msg)
}

// objectID parses a hex id. ok is false for malformed ids, which never match.
func objectID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	return oid, err == nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, wrapError(err, "find "+col.Name())
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err, "find "+col.Name())
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, wrapError(err, "decode "+col.Name())
	}
	return out, nil
}

// updateByID applies set to the document with _id oid (and any extra filter).
// A missing document is apperr.ErrNotFound.
func updateByID(ctx context.Context, col *mongo.Collection, oid bson.ObjectID, extra bson.D, set bson.D) (matched, modified int64, err error) {
	filter := append(bson.D{{Key: "_id", Value: oid}}, extra...)
	res, err := col.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return 0, 0, wrapError(err, "update "+col.Name())
	}
	if res.MatchedCount == 0 {
		return 0, 0, apperr.ErrNotFound
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) (int64, error) {
	oid, ok := objectID(id)
	if !ok {
		return 0, nil
	}
	res, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, wrapError(err, "delete "+col.Name())
	}
	return res.DeletedCount, nil
}
