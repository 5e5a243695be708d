package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"homelyhub/internal/domain"
)

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	o, err := oid(id)
	if err != nil {
		return domain.User{}, err
	}
	var d userDoc
	if err := s.users.FindOne(ctx, bson.M{"_id": o}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return fromUserDoc(d), nil
}

func (s *Store) CreateUser(ctx context.Context, u domain.User) (string, error) {
	d, err := toUserDoc(u)
	if err != nil {
		return "", err
	}
	res, err := s.users.InsertOne(ctx, d)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	d, err := toUserDoc(u)
	if err != nil {
		return err
	}
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
