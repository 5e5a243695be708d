package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homelyhub/internal/domain"
)

func (s *Store) CreateReview(ctx context.Context, r domain.Review) (string, error) {
	d, err := toReviewDoc(r)
	if err != nil {
		return "", err
	}
	res, err := s.reviews.InsertOne(ctx, d)
	if err != nil {
		// the unique {booking:1} index is the invariant's real enforcement
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: this booking already has a review", domain.ErrConflict)
		}
		return "", err
	}
	return insertedID(res), nil
}

func (s *Store) ListByProperty(ctx context.Context, propertyID string, limit int) ([]domain.Review, error) {
	o, err := oid(propertyID)
	if err != nil {
		return nil, err
	}
	cur, err := s.reviews.Find(ctx, bson.M{"property": o},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Review
	for cur.Next(ctx) {
		var d reviewDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, fromReviewDoc(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
