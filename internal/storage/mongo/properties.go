package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homelyhub/internal/domain"
)

func (s *Store) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	o, err := oid(id)
	if err != nil {
		return domain.Property{}, err
	}
	var d propertyDoc
	if err := s.properties.FindOne(ctx, bson.M{"_id": o}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Property{}, domain.ErrNotFound
		}
		return domain.Property{}, err
	}
	return fromPropertyDoc(d), nil
}

func (s *Store) ListProperties(ctx context.Context, q domain.SearchQuery) ([]domain.Property, int64, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, 0, err
	}

	// total is independent of skip/limit so navigation stays accurate
	total, err := s.properties.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(buildSort(q.Sort)).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
	if proj := buildProjection(q.Select); proj != nil {
		opts.SetProjection(proj)
	}
	cur, err := s.properties.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []domain.Property
	for cur.Next(ctx) {
		var d propertyDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, err
		}
		items = append(items, fromPropertyDoc(d))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) ListByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	os, err := oids(ids)
	if err != nil {
		return nil, err
	}
	cur, err := s.properties.Find(ctx, bson.M{"_id": bson.M{"$in": os}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeProperties(ctx, cur)
}

func (s *Store) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	o, err := oid(hostID)
	if err != nil {
		return nil, err
	}
	cur, err := s.properties.Find(ctx, bson.M{"host": o},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeProperties(ctx, cur)
}

func (s *Store) CreateProperty(ctx context.Context, p domain.Property) (string, error) {
	d, err := toPropertyDoc(p)
	if err != nil {
		return "", err
	}
	res, err := s.properties.InsertOne(ctx, d)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *Store) UpdateProperty(ctx context.Context, p domain.Property) error {
	d, err := toPropertyDoc(p)
	if err != nil {
		return err
	}
	res, err := s.properties.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateRating(ctx context.Context, id string, r domain.RatingSummary) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.properties.UpdateByID(ctx, o, bson.M{"$set": bson.M{
		"rating": ratingDoc(r),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.properties.DeleteOne(ctx, bson.M{"_id": o})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func decodeProperties(ctx context.Context, cur *mongo.Cursor) ([]domain.Property, error) {
	var out []domain.Property
	for cur.Next(ctx) {
		var d propertyDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, fromPropertyDoc(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
