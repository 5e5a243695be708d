package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homelyhub/internal/domain"
)

// Store bundles the typed repositories over one database handle. The split
// into per-entity files mirrors the collections.
type Store struct {
	users      *mongo.Collection
	properties *mongo.Collection
	bookings   *mongo.Collection
	reviews    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:      db.Collection("users"),
		properties: db.Collection("properties"),
		bookings:   db.Collection("bookings"),
		reviews:    db.Collection("reviews"),
	}
}

// EnsureIndexes creates the indexes the invariants depend on. The unique
// {booking:1} index on reviews is the only thing standing between two
// concurrent submissions and a duplicate review.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "booking", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("reviews index: %w", err)
	}
	if _, err := s.reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "property", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("reviews property index: %w", err)
	}
	if _, err := s.properties.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "host", Value: 1}},
	}); err != nil {
		return fmt.Errorf("properties host index: %w", err)
	}
	for _, keys := range []bson.D{
		{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
		{{Key: "property", Value: 1}},
	} {
		if _, err := s.bookings.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			return fmt.Errorf("bookings index: %w", err)
		}
	}
	return nil
}

// oid converts an external id into an ObjectID. Callers validate the 24-hex
// shape first, so a failure here is still a validation error, never a query.
func oid(id string) (primitive.ObjectID, error) {
	o, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, id)
	}
	return o, nil
}

func oids(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		o, err := oid(id)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if o, ok := res.InsertedID.(primitive.ObjectID); ok {
		return o.Hex()
	}
	return ""
}
