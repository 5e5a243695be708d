package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homelyhub/internal/domain"
)

func (s *Store) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	o, err := oid(id)
	if err != nil {
		return domain.Booking{}, err
	}
	var d bookingDoc
	if err := s.bookings.FindOne(ctx, bson.M{"_id": o}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return fromBookingDoc(d), nil
}

func (s *Store) CreateBooking(ctx context.Context, b domain.Booking) (string, error) {
	d, err := toBookingDoc(b)
	if err != nil {
		return "", err
	}
	res, err := s.bookings.InsertOne(ctx, d)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	o, err := oid(userID)
	if err != nil {
		return nil, err
	}
	return s.findBookings(ctx, bson.M{"user": o})
}

func (s *Store) ListByProperties(ctx context.Context, propertyIDs []string) ([]domain.Booking, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	os, err := oids(propertyIDs)
	if err != nil {
		return nil, err
	}
	return s.findBookings(ctx, bson.M{"property": bson.M{"$in": os}})
}

func (s *Store) findBookings(ctx context.Context, filter bson.M) ([]domain.Booking, error) {
	cur, err := s.bookings.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Booking
	for cur.Next(ctx) {
		var d bookingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, fromBookingDoc(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
