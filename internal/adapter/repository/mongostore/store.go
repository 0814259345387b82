// Package mongostore implements the repositories on MongoDB. Collection names
// and field names match the existing microcredx database.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColProducts     = "allloan"
	ColUsers        = "user"
	ColApplications = "loan-application"
)

// Store owns the client and database handle shared by the repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects, pings and ensures indexes. Any failure is fatal to the caller.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongostore: ping")
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection { return s.db.Collection(name) }

// EnsureIndexes creates the indexes the repositories rely on. The partial
// unique index on applications allows one Pending application per email.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type idx struct {
		col  string
		keys bson.D
		opts *options.IndexOptionsBuilder
	}
	indexes := []idx{
		{ColProducts, bson.D{{Key: "createdBy", Value: 1}}, nil},
		{ColProducts, bson.D{{Key: "showOnHome", Value: 1}}, nil},
		{ColUsers, bson.D{{Key: "email", Value: 1}}, options.Index().SetUnique(true)},
		{ColApplications, bson.D{{Key: "status", Value: 1}}, nil},
		{ColApplications, bson.D{{Key: "email", Value: 1}}, options.Index().
			SetName("ux_email_pending").
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "status", Value: "Pending"}})},
	}
	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys, Options: i.opts}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return errors.Wrapf(err, "mongostore: create index on %s", i.col)
		}
	}
	return nil
}
